package models

import "time"

type GroupProfile struct {
	Group_Profile_ID  int       `json:"groupId" goqu:"skipinsert"`
	Group_Name        string    `json:"groupName"`
	Group_Description string    `json:"groupDescription"`
	Is_Active         bool      `json:"isActive"`
	Datetime_Create   time.Time `json:"datetimeCreate" goqu:"skipinsert"`
	Datetime_Update   time.Time `json:"datetimeUpdate" goqu:"skipinsert"`
	Created_By        int       `json:"createdBy"`
	Updated_By        int       `json:"updatedBy"`
}

type GroupCreate struct {
	Group_Name        string `json:"groupName" binding:"required"`
	Group_Description string `json:"groupDescription"`
}

// GroupActiveToggle is the request body for the activation toggle.
type GroupActiveToggle struct {
	Is_Active bool `json:"isActive"`
}

// UserGroup is a membership row. Only active rows count as membership.
type UserGroup struct {
	User_Group_ID    int       `json:"userGroupId" goqu:"skipinsert"`
	User_Profile_ID  int       `json:"userId"`
	Group_Profile_ID int       `json:"groupId"`
	Is_Active        bool      `json:"isActive"`
	Created_By       int       `json:"createdBy"`
	Updated_By       int       `json:"updatedBy"`
	Datetime_Create  time.Time `json:"datetimeCreate"`
	Datetime_Update  time.Time `json:"datetimeUpdate"`
}
