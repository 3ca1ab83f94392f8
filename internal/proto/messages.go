package proto

import "encoding/json"

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status,omitempty"`
}

func (x *PingResponse) GetStatus() string {
	if x != nil {
		return x.Status
	}
	return ""
}

type RegisterUserRequest struct {
	Username string `json:"username,omitempty"`
	PetName  string `json:"petName,omitempty"`
	Salt     []byte `json:"salt,omitempty"`
	Verifier []byte `json:"verifier,omitempty"`
}

type RegisterUserResponse struct {
	Username string `json:"username,omitempty"`
}

func (x *RegisterUserResponse) GetUsername() string {
	if x != nil {
		return x.Username
	}
	return ""
}

type GetSaltRequest struct {
	Username string `json:"username,omitempty"`
}

type GetSaltResponse struct {
	Salt []byte `json:"salt,omitempty"`
}

func (x *GetSaltResponse) GetSalt() []byte {
	if x != nil {
		return x.Salt
	}
	return nil
}

type LoginRequest struct {
	Username          string `json:"username,omitempty"`
	VerifierCandidate []byte `json:"verifierCandidate,omitempty"`
}

type LoginResponse struct {
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

func (x *LoginResponse) GetAccessToken() string {
	if x != nil {
		return x.AccessToken
	}
	return ""
}

func (x *LoginResponse) GetRefreshToken() string {
	if x != nil {
		return x.RefreshToken
	}
	return ""
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken,omitempty"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

func (x *RefreshTokenResponse) GetAccessToken() string {
	if x != nil {
		return x.AccessToken
	}
	return ""
}

func (x *RefreshTokenResponse) GetRefreshToken() string {
	if x != nil {
		return x.RefreshToken
	}
	return ""
}

type GetDocumentRequest struct {
	Id string `json:"id,omitempty"`
}

func (x *GetDocumentRequest) GetId() string {
	if x != nil {
		return x.Id
	}
	return ""
}

// Document is a stored document body with its version.
type Document struct {
	Id      string          `json:"id,omitempty"`
	Body    json.RawMessage `json:"body,omitempty"`
	Version int64           `json:"version,omitempty"`
}

func (x *Document) GetId() string {
	if x != nil {
		return x.Id
	}
	return ""
}

func (x *Document) GetBody() json.RawMessage {
	if x != nil {
		return x.Body
	}
	return nil
}

func (x *Document) GetVersion() int64 {
	if x != nil {
		return x.Version
	}
	return 0
}

type GetDocumentResponse struct {
	Document *Document `json:"document,omitempty"`
}

func (x *GetDocumentResponse) GetDocument() *Document {
	if x != nil {
		return x.Document
	}
	return nil
}

type CreateOrMergeDocumentRequest struct {
	Id     string          `json:"id,omitempty"`
	Fields json.RawMessage `json:"fields,omitempty"`
}

func (x *CreateOrMergeDocumentRequest) GetId() string {
	if x != nil {
		return x.Id
	}
	return ""
}

type CreateOrMergeDocumentResponse struct {
	Version int64 `json:"version,omitempty"`
}

func (x *CreateOrMergeDocumentResponse) GetVersion() int64 {
	if x != nil {
		return x.Version
	}
	return 0
}

// Write is a single set or increment instruction.
type Write struct {
	Path  []string        `json:"path,omitempty"`
	Op    string          `json:"op,omitempty"`
	Value json.RawMessage `json:"value,omitempty"`
	Delta int64           `json:"delta,omitempty"`
}

type PartialUpdateDocumentRequest struct {
	Id     string   `json:"id,omitempty"`
	Writes []*Write `json:"writes,omitempty"`
}

func (x *PartialUpdateDocumentRequest) GetId() string {
	if x != nil {
		return x.Id
	}
	return ""
}

func (x *PartialUpdateDocumentRequest) GetWrites() []*Write {
	if x != nil {
		return x.Writes
	}
	return nil
}

type PartialUpdateDocumentResponse struct {
	Version int64 `json:"version,omitempty"`
}

func (x *PartialUpdateDocumentResponse) GetVersion() int64 {
	if x != nil {
		return x.Version
	}
	return 0
}

type SubscribeRequest struct {
	Id string `json:"id,omitempty"`
}

func (x *SubscribeRequest) GetId() string {
	if x != nil {
		return x.Id
	}
	return ""
}

// DocumentSnapshot is pushed on every change. Exists is false when the
// document is missing; Document is then nil.
type DocumentSnapshot struct {
	Id       string    `json:"id,omitempty"`
	Exists   bool      `json:"exists,omitempty"`
	Document *Document `json:"document,omitempty"`
}

func (x *DocumentSnapshot) GetExists() bool {
	if x != nil {
		return x.Exists
	}
	return false
}

func (x *DocumentSnapshot) GetDocument() *Document {
	if x != nil {
		return x.Document
	}
	return nil
}

type Companion struct {
	Id   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
	File string `json:"file,omitempty"`
	Url  string `json:"url,omitempty"`
}

func (x *Companion) GetId() string {
	if x != nil {
		return x.Id
	}
	return ""
}

func (x *Companion) GetUrl() string {
	if x != nil {
		return x.Url
	}
	return ""
}

type ListCompanionsRequest struct{}

type ListCompanionsResponse struct {
	Companions []*Companion `json:"companions,omitempty"`
}

func (x *ListCompanionsResponse) GetCompanions() []*Companion {
	if x != nil {
		return x.Companions
	}
	return nil
}

type ResolveModelURLRequest struct {
	PetId string `json:"petId,omitempty"`
}

func (x *ResolveModelURLRequest) GetPetId() string {
	if x != nil {
		return x.PetId
	}
	return ""
}

type ResolveModelURLResponse struct {
	Companion *Companion `json:"companion,omitempty"`
}

func (x *ResolveModelURLResponse) GetCompanion() *Companion {
	if x != nil {
		return x.Companion
	}
	return nil
}
