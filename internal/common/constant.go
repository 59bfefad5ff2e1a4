package common

// SessionCookieName is the cookie that carries the session token between
// the browser and the API.
const SessionCookieName = "session-token"

// BootstrapAdminID is the fixed id of the administrator seeded by the
// initial migration. This record can never be deleted.
const BootstrapAdminID = "00000000-0000-0000-0000-000000000001"
