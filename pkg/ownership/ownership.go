// Package ownership guards mutations of owned records.
package ownership

import "vidtube/pkg/apperror"

// Check fails with Forbidden unless principal owns the resource. Callers load
// the record first so a missing record is reported as NotFound, not here.
func Check(principal, ownerID, resource string) error {
	if principal == "" || principal != ownerID {
		return apperror.Forbidden("you are not the owner of this %s", resource)
	}
	return nil
}
