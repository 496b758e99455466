package shared

import (
	"station-booking/internal/infra"
	"station-booking/internal/pkg/errs"
)

var ErrMaxRetriesExceeded = errs.New("transaction failed after max retries")

var repoKinds = []struct {
	repo infra.RepositoryErrorKind
	mark error
}{
	{infra.KindNotFound, errs.ErrNotFound},
	{infra.KindDuplicateKey, errs.ErrConflict},
	{infra.KindForeignKeyViolated, errs.ErrConflict},
	{infra.KindExclusionViolated, errs.ErrSlotConflict},
	{infra.KindDBFailure, errs.ErrStoreUnavailable},
}

// MarkRepoErr attaches the caller-facing kind to a repository error. Errors
// that already carry a kind, or are not repository errors, pass through.
func MarkRepoErr(err error) error {
	if err == nil || errs.KindOf(err) != errs.KindInternal {
		return err
	}
	if errs.Is(err, ErrMaxRetriesExceeded) {
		return errs.Mark(err, errs.ErrStoreUnavailable)
	}
	for _, rk := range repoKinds {
		if infra.IsKind(err, rk.repo) {
			return errs.Mark(err, rk.mark)
		}
	}
	return err
}
