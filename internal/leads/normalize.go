package leads

import (
	"fmt"
	"strconv"
)

// Vendor field names are an external contract with the CRM. Some of them
// carry confirmed vendor-side misspellings ("whatsapurl") that must be read
// verbatim; do not "fix" them here without a coordinated vendor change.
//
// Any correction happens in this one table and nowhere else.
const (
	fieldRecordID     = "customobjectid"
	fieldName         = "fullname"
	fieldPhone        = "telephone1"
	fieldEmail        = "emailaddress1"
	fieldCampaign     = "campaignname"
	fieldAdset        = "adsetname"
	fieldStatus       = "statuscode"
	fieldStatusDetail = "statusdetail"
	fieldSubStatus    = "substatus"
	fieldCity         = "billingcity"
	fieldSource       = "leadsource"
	fieldWhatsappURL  = "whatsapurl" // vendor typo, intentional
	fieldCompany      = "companyname"
)

// Normalize maps a raw CRM response body onto the canonical Lead.
//
// The upstream nests the field bag under different keys depending on endpoint
// version; the first shape yielding a non-nil container wins. fallbackID is
// the caller-supplied record id; when it is empty the id found inside the bag
// is used instead.
func Normalize(response map[string]any, fallbackID string) Lead {
	bag := locateBag(response)

	l := Lead{
		RecordID:     fallbackID,
		Name:         str(bag, fieldName),
		Phone:        str(bag, fieldPhone),
		Email:        str(bag, fieldEmail),
		Campaign:     str(bag, fieldCampaign),
		Adset:        str(bag, fieldAdset),
		Status:       str(bag, fieldStatus),
		StatusDetail: str(bag, fieldStatusDetail),
		SubStatus:    str(bag, fieldSubStatus),
		City:         str(bag, fieldCity),
		Source:       str(bag, fieldSource),
		WhatsappURL:  str(bag, fieldWhatsappURL),
		Company:      str(bag, fieldCompany),
	}
	if l.RecordID == "" {
		l.RecordID = str(bag, fieldRecordID)
	}
	return l
}

// locateBag probes the known response envelope shapes in a fixed order.
func locateBag(response map[string]any) map[string]any {
	if response == nil {
		return nil
	}
	if data, ok := response["data"].(map[string]any); ok {
		if rec, ok := data["Record"].(map[string]any); ok {
			return rec
		}
		if rec, ok := data["record"].(map[string]any); ok {
			return rec
		}
		return data
	}
	if rec, ok := response["record"].(map[string]any); ok {
		return rec
	}
	return response
}

// str reads a bag value as a string, tolerating the JSON number/bool types
// the CRM is known to emit for nominally-text fields.
func str(bag map[string]any, key string) string {
	if bag == nil {
		return ""
	}
	switch v := bag[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
