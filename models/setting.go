package models

import "time"

// Setting keys managed through the optimistic toggle path.
const (
	SettingFeatureSlot = "feature_slot"
)

// AppSetting is a key/value row backing admin-managed surface settings,
// such as the featured-post slot.
type AppSetting struct {
	Setting_Key     string    `json:"settingKey" db:"setting_key"`
	Setting_Value   string    `json:"settingValue" db:"setting_value"`
	Updated_By      int       `json:"updatedBy" db:"updated_by"`
	Datetime_Update time.Time `json:"datetimeUpdate" db:"datetime_update" goqu:"skipinsert"`
}

// FeatureSlotAssign is the request body for assigning the featured post.
type FeatureSlotAssign struct {
	Post_ID int `json:"postId" binding:"required"`
}
