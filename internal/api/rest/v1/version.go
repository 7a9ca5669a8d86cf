package v1

// BasePath is the URL prefix every v1 route is registered under.
const BasePath = "/api/v1"
