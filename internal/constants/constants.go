package constants

// 每行同步结果常量
const (
	// ItemErrorExpress 当前配送区域/时段不可配送的服务端拒绝标记
	ItemErrorExpress = "Express"
)

// 身份类型常量
const (
	IdentityKindGuest    = "guest"
	IdentityKindCustomer = "customer"
)

// 远端调用请求头常量
const (
	HeaderGuestToken = "X-Guest-Token"
	HeaderCustomerID = "X-Customer-ID"
)
