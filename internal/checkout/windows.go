package checkout

// DefaultDeliveryWindows are the selectable delivery slots, in display order.
var DefaultDeliveryWindows = []string{
	"09:00 - 11:00",
	"11:00 - 13:00",
	"13:00 - 15:00",
	"15:00 - 17:00",
	"17:00 - 19:00",
}
