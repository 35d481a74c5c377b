package models

// Route is the directional shipping lane. It selects the AWB prefix and the
// dial-code defaults applied to sender and receiver.
type Route string

const (
	// RouteOutbound ships UAE to India.
	RouteOutbound Route = "uae_to_india"
	// RouteReverse ships India to UAE.
	RouteReverse Route = "india_to_uae"
)

// AWBPrefix returns the 2-character tracking-code prefix for the route.
func (r Route) AWBPrefix() string {
	if r == RouteReverse {
		return "IU"
	}
	return "UI"
}

// SenderDialCode returns the default country dial code for the sender side.
func (r Route) SenderDialCode() string {
	if r == RouteReverse {
		return "+91"
	}
	return "+971"
}

// ReceiverDialCode returns the default country dial code for the receiver side.
func (r Route) ReceiverDialCode() string {
	if r == RouteReverse {
		return "+971"
	}
	return "+91"
}
