package services

import (
	"errors"

	"hostelhub/pkg/utils"
)

// isDomainErr reports errors that already carry their HTTP meaning.
func isDomainErr(err error) bool {
	return utils.IsValidationError(err) ||
		errors.Is(err, utils.ErrRecordNotFound) ||
		errors.Is(err, utils.ErrDuplicateRequest) ||
		errors.Is(err, utils.ErrAlreadyReviewed) ||
		errors.Is(err, utils.ErrNotHostelOwner) ||
		errors.Is(err, utils.ErrPlanInUse) ||
		errors.Is(err, utils.ErrSubscriptionExists) ||
		errors.Is(err, utils.ErrEmailAlreadyExists) ||
		errors.Is(err, utils.ErrDatabaseError)
}

// storageErr passes domain errors through and tags everything else as a database failure.
func storageErr(op string, err error) error {
	if err == nil || isDomainErr(err) {
		return err
	}
	return utils.DBError(op, err)
}
