package consolidation

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// BuildHybridTrackingID renders the per-order tracking id embedded in every
// PO link once the China leg starts:
//
//	[deptCode][communeCode]-[poNumber]-[trackingNumber]-[orderID]
func BuildHybridTrackingID(deptCode, communeCode, poNumber, trackingNumber string, orderID uuid.UUID) string {
	return fmt.Sprintf("%s%s-%s-%s-%s",
		strings.ToUpper(strings.TrimSpace(deptCode)),
		strings.ToUpper(strings.TrimSpace(communeCode)),
		poNumber,
		strings.TrimSpace(trackingNumber),
		orderID.String(),
	)
}
