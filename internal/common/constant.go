package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// DocumentCollection is the logical collection name documents live in.
// It prefixes storage keys and log fields, nothing more.
const DocumentCollection = "users"
