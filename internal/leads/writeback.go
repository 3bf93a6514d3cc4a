package leads

// Vendor field names used on the write side of the CRM contract.
// The read-side table in normalize.go is the authority for spelling.
const (
	fieldNote = "description"
)

// UpdateFields assembles a vendor-named field map for a CRM record patch.
// Empty values are left out so a partial outcome never blanks CRM data.
func UpdateFields(status, statusDetail, note string) map[string]string {
	fields := make(map[string]string, 3)
	if status != "" {
		fields[fieldStatus] = status
	}
	if statusDetail != "" {
		fields[fieldStatusDetail] = statusDetail
	}
	if note != "" {
		fields[fieldNote] = note
	}
	return fields
}
