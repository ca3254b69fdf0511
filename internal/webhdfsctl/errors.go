package webhdfsctl

import (
	"github.com/hashicorp/go-multierror"
)

// appendError combines a failure while releasing a resource with the error the operation
// already returned. The first error keeps its identity when nothing else failed.
func appendError(outerErr error, err error) error {
	if outerErr == nil {
		return err
	}
	return multierror.Append(outerErr, err)
}
