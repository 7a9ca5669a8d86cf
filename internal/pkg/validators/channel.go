package validators

import (
	"github.com/go-playground/validator/v10"
)

// Notification channel names accepted across the service.
var knownChannels = map[string]struct{}{
	"email": {},
	"push":  {},
	"sms":   {},
	"inapp": {},
}

// ChannelValidation validates a single notification channel name.
func ChannelValidation(fl validator.FieldLevel) bool {
	_, ok := knownChannels[fl.Field().String()]
	return ok
}
