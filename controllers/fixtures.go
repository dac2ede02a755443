package controllers

import (
	"time"

	"github.com/CircleTalk/models"
	"golang.org/x/crypto/bcrypt"
)

// Test fixture data for use in tests

// MockUser creates a sample user profile for testing
func MockUser() models.UserProfile {
	return models.UserProfile{
		User_Profile_ID: 1,
		Username:        "testuser",
		Display_Name:    "Test User",
		Email:           "test@example.com",
		Admin:           false,
		Created_By:      1,
		Updated_By:      1,
		Datetime_Create: time.Now(),
		Datetime_Update: time.Now(),
	}
}

// MockSecondUser creates a second, distinct user for ownership tests
func MockSecondUser() models.UserProfile {
	return models.UserProfile{
		User_Profile_ID: 3,
		Username:        "otheruser",
		Display_Name:    "Other User",
		Email:           "other@example.com",
		Admin:           false,
		Created_By:      1,
		Updated_By:      1,
		Datetime_Create: time.Now(),
		Datetime_Update: time.Now(),
	}
}

// MockUserWithPassword creates a sample user with a bcrypt hashed password
// Password is "password123" - use this in tests
func MockUserWithPassword() models.UserProfile {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := MockUser()
	user.Password = string(hashedPassword)
	return user
}

// MockAdminUser creates a sample admin user for testing
func MockAdminUser() models.UserProfile {
	return models.UserProfile{
		User_Profile_ID: 2,
		Username:        "adminuser",
		Display_Name:    "Admin User",
		Email:           "admin@example.com",
		Admin:           true,
		Created_By:      1,
		Updated_By:      1,
		Datetime_Create: time.Now(),
		Datetime_Update: time.Now(),
	}
}

// MockGroupProfile creates a sample group for testing
func MockGroupProfile() models.GroupProfile {
	return models.GroupProfile{
		Group_Profile_ID:  1,
		Group_Name:        "Test Group",
		Group_Description: "A test group",
		Is_Active:         true,
		Created_By:        1,
		Updated_By:        1,
		Datetime_Create:   time.Now(),
		Datetime_Update:   time.Now(),
	}
}

// commentColumnNames matches the row shape of fetchComment scans
func commentColumnNames() []string {
	return []string{
		"comment_id", "author_id", "parent_id", "context_type", "context_id",
		"body", "attachment_kind", "attachment_url", "attachment_name",
		"attachment_embed_url", "status", "reported_by", "reported_at",
		"report_reason", "report_details", "datetime_create", "datetime_update",
	}
}

// feedColumnNames matches the row shape of feed queries
func feedColumnNames() []string {
	return []string{
		"comment_id", "author_id", "parent_id", "context_type", "context_id",
		"body", "attachment_kind", "attachment_url", "attachment_name",
		"attachment_embed_url", "status", "datetime_create", "datetime_update",
		"author_name", "author_avatar",
	}
}
