package configuration

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"

	"github.com/G-Research/loadsweep/internal/common/sweeperrors"
)

func (c LoadSweepConfiguration) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	for _, column := range c.Extract.Columns {
		if !slices.Contains(c.Extract.Metrics, column) {
			return errors.WithStack(&sweeperrors.ErrInvalidArgument{
				Name:    "Extract.Columns",
				Value:   column,
				Message: "every column must be one of Extract.Metrics",
			})
		}
	}
	return nil
}
