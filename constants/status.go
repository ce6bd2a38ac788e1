package constants

// Trạng thái đặt phòng
const (
	ReservationStatusActive    = "active"
	ReservationStatusCancelled = "cancelled"
)

// Trạng thái thanh toán
const (
	PaymentStatusPending   = "pending"
	PaymentStatusPartial   = "partial"
	PaymentStatusCompleted = "completed"
)

// Phạm vi block
const (
	BlockScopeSpecific = "specific"
	BlockScopeAll      = "all"
)

// Nhóm cơ sở (property tag)
const (
	PropertyTagMainHouse = "main-house"
	PropertyTagBoutique  = "boutique"
)

// PropertyTags danh sách nhóm cơ sở hợp lệ
var PropertyTags = []string{PropertyTagMainHouse, PropertyTagBoutique}

// Thuế suất tính trên subtotal
const (
	TaxRateVAT     = 0.16
	TaxRateLodging = 0.04
)

// User status
const (
	UserStatusActive   = 1
	UserStatusInactive = 0
)

// IsValidPropertyTag kiểm tra tag có nằm trong danh sách không
func IsValidPropertyTag(tag string) bool {
	for _, t := range PropertyTags {
		if t == tag {
			return true
		}
	}
	return false
}

// IsValidBlockScope kiểm tra scope hợp lệ: specific, all hoặc một property tag
func IsValidBlockScope(scope string) bool {
	if scope == BlockScopeSpecific || scope == BlockScopeAll {
		return true
	}
	return IsValidPropertyTag(scope)
}
