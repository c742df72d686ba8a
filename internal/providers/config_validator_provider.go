package providers

import (
	"fmt"
	"goaltracker/internal/structures"

	"github.com/gookit/validate"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (c *CnfValidator) Validate() error {
	v := validate.Struct(c.conf)
	if !v.Validate() {
		return fmt.Errorf("invalid configuration: %s", v.Errors.Error())
	}
	if c.conf.Tracker.TickInterval > c.conf.Tracker.Cooldown {
		return fmt.Errorf("invalid configuration: tracker.tickInterval %s exceeds tracker.cooldown %s",
			c.conf.Tracker.TickInterval, c.conf.Tracker.Cooldown)
	}
	if c.conf.Tracker.CheckpointInterval < 0 {
		return fmt.Errorf("invalid configuration: tracker.checkpointInterval must not be negative")
	}
	return nil
}
