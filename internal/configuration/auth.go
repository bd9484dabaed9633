package configuration

type AuthRule struct {
	Path        string
	Method      string // empty means all methods
	RequireAuth bool   // true means require auth, false means exclude from auth
}

var AuthRulePrefixMatchPath = []AuthRule{
	{Path: "/api/v1/auth", Method: "*", RequireAuth: false},
	{Path: "/api/v1/users", Method: "*", RequireAuth: true},
	{Path: "/api/v1/chats", Method: "*", RequireAuth: true},
	{Path: "/api/v1/emotions", Method: "*", RequireAuth: true},
	{Path: "/api/v1/admin", Method: "*", RequireAuth: true},
}
