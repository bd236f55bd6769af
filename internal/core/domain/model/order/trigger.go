package order

import (
	"fmt"

	"textile/internal/pkg/errs"
)

// Trigger is an explicit operator action that asks for a status change.
// Transitions never happen on their own; every one starts from a Trigger.
type Trigger int

const (
	UnknownTrigger Trigger = iota
	SendToSupplier
	ArriveConforming
	ArriveNonConforming
	ReturnToEdit
	ResendAfterNonConformity
	CompleteDelivery
	ReturnToConfection
)

func getTriggerStrings() map[Trigger]string {
	return map[Trigger]string{
		UnknownTrigger:           "UNKNOWN",
		SendToSupplier:           "SEND_TO_SUPPLIER",
		ArriveConforming:         "ARRIVE_CONFORMING",
		ArriveNonConforming:      "ARRIVE_NONCONFORMING",
		ReturnToEdit:             "RETURN_TO_EDIT",
		ResendAfterNonConformity: "RESEND_AFTER_NONCONFORMITY",
		CompleteDelivery:         "COMPLETE_DELIVERY",
		ReturnToConfection:       "RETURN_TO_CONFECTION",
	}
}

// AllTriggers returns every valid trigger in declaration order.
func AllTriggers() []Trigger {
	return []Trigger{
		SendToSupplier,
		ArriveConforming,
		ArriveNonConforming,
		ReturnToEdit,
		ResendAfterNonConformity,
		CompleteDelivery,
		ReturnToConfection,
	}
}

func (t Trigger) String() string {
	if str, ok := getTriggerStrings()[t]; ok {
		return str
	}
	return "UNKNOWN"
}

func (t Trigger) Validate() error {
	if t <= UnknownTrigger || t > ReturnToConfection {
		return errs.NewValueIsInvalidErrorWithCause("trigger is invalid", fmt.Errorf("%d is not a valid trigger", t))
	}
	return nil
}

// TriggerFromString parses a trigger name such as "COMPLETE_DELIVERY".
func TriggerFromString(s string) (Trigger, error) {
	for trigger, name := range getTriggerStrings() {
		if trigger != UnknownTrigger && name == s {
			return trigger, nil
		}
	}
	return UnknownTrigger, errs.NewValueIsInvalidErrorWithCause("trigger is invalid", fmt.Errorf("%q is not a valid trigger", s))
}
