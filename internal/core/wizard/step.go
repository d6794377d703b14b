package wizard

import (
	"context"
	"errors"
	"fmt"

	"github.com/srgjo27/hall_booking/internal/core/domain"
	"github.com/srgjo27/hall_booking/internal/core/ports"
)

type AvailabilityGate interface {
	Resolve(ctx context.Context, q domain.AvailabilityQuery) (domain.AvailabilityResult, error)
}

// EnterHook runs after every gate passed and before the step pointer moves.
// An error keeps the wizard where it was.
type EnterHook func(ctx context.Context, target domain.Step) error

// StepController moves the step pointer: backwards freely, forwards one
// step at a time and only past a valid section.
type StepController struct {
	form         *FormState
	availability AvailabilityGate
	highlighter  ports.Highlighter
	onEnter      EnterHook
}

func NewStepController(form *FormState, availability AvailabilityGate, highlighter ports.Highlighter, onEnter EnterHook) *StepController {
	return &StepController{
		form:         form,
		availability: availability,
		highlighter:  highlighter,
		onEnter:      onEnter,
	}
}

// ChangeStep moves to target. group is the section of the current step; nil
// means look it up.
func (c *StepController) ChangeStep(ctx context.Context, target domain.Step, group *FieldGroup) error {
	if !target.Valid() {
		return fmt.Errorf("%w: unknown step %d", domain.ErrInvalidTransition, int(target))
	}

	current := c.form.CurrentStep()
	if target <= current {
		c.form.setStep(target)
		return nil
	}
	if target != current+1 {
		return fmt.Errorf("%w: cannot jump from %s to %s", domain.ErrInvalidTransition, current, target)
	}

	if group == nil {
		section, _ := current.Section()
		g, err := c.form.Section(section)
		if err != nil {
			return err
		}
		group = g
	}

	if err := group.Validate(); err != nil {
		group.MarkAllTouched()
		if c.highlighter != nil {
			var verr *domain.ValidationError
			if errors.As(err, &verr) {
				c.highlighter.Shake(group.Name(), verr.FieldNames())
			} else {
				c.highlighter.Shake(group.Name(), nil)
			}
		}
		return err
	}

	if current == domain.StepBookingInfo {
		draft := c.form.Draft()
		res, err := c.availability.Resolve(ctx, domain.QueryFromInfo(draft.BookingInfo, draft.BookingID))
		if err != nil {
			return err
		}
		if !res.Available {
			return &domain.OverlapError{Conflict: res.Conflict}
		}
	}

	if c.onEnter != nil {
		if err := c.onEnter(ctx, target); err != nil {
			return err
		}
	}

	c.form.setStep(target)
	return nil
}
