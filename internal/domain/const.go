package domain

const (
	LocaleCookie  = "locale"
	VisitorCookie = "tp_visitor"
)

const (
	LocaleStoreCtxKey = "tp-localeStore"
	VisitorIDCtxKey   = "tp-visitorId"
)

const (
	LocaleHeader = "X-Locale"
)

// VisitorChannel returns the pub/sub channel carrying events for one visitor.
func VisitorChannel(visitorID string) string {
	return "tptech:visitor:" + visitorID
}
