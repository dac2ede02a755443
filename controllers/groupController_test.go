package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/CircleTalk/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

var groupColumnNames = []string{
	"group_profile_id", "group_name", "group_description", "is_active",
	"datetime_create", "datetime_update", "created_by", "updated_by",
}

var userGroupColumnNames = []string{
	"user_group_id", "user_profile_id", "group_profile_id", "is_active",
	"created_by", "updated_by", "datetime_create", "datetime_update",
}

// Test CreateGroup - admin-only, and the creator joins automatically
func TestCreateGroup(t *testing.T) {
	tests := []struct {
		name           string
		currentUser    models.UserProfile
		isAdmin        bool
		requestBody    map[string]interface{}
		expectedStatus int
		expectError    bool
	}{
		{
			name:           "admin creates a group",
			currentUser:    MockAdminUser(),
			isAdmin:        true,
			requestBody:    map[string]interface{}{"groupName": "Book Club", "groupDescription": "Monthly reads"},
			expectedStatus: http.StatusCreated,
			expectError:    false,
		},
		{
			name:           "non-admin is rejected",
			currentUser:    MockUser(),
			isAdmin:        false,
			requestBody:    map[string]interface{}{"groupName": "Book Club"},
			expectedStatus: http.StatusUnauthorized,
			expectError:    true,
		},
		{
			name:           "missing group name",
			currentUser:    MockAdminUser(),
			isAdmin:        true,
			requestBody:    map[string]interface{}{"groupDescription": "No name"},
			expectedStatus: http.StatusBadRequest,
			expectError:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			if !tt.expectError {
				insertRows := sqlmock.NewRows([]string{"group_profile_id"}).AddRow(5)
				mock.ExpectQuery("INSERT").WillReturnRows(insertRows)
				mock.ExpectExec("INSERT").WillReturnResult(sqlmock.NewResult(1, 1))
			}

			c, w := SetupTestContext()
			SetAuthenticatedUser(c, tt.currentUser, tt.isAdmin)

			bodyBytes, _ := json.Marshal(tt.requestBody)
			c.Request = httptest.NewRequest("POST", "/groups", bytes.NewBuffer(bodyBytes))
			c.Request.Header.Set("Content-Type", "application/json")

			CreateGroup(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			_ = json.Unmarshal(w.Body.Bytes(), &response)

			if tt.expectError {
				assert.NotNil(t, response["error"])
			} else {
				assert.Equal(t, float64(5), response["groupId"])
				assert.Equal(t, "Book Club", response["groupName"])
				assert.Equal(t, true, response["isActive"])
			}
		})
	}
}

// Test JoinGroup - joining twice is not an error
func TestJoinGroup(t *testing.T) {
	tests := []struct {
		name           string
		groupID        string
		groupExists    bool
		groupActive    bool
		alreadyMember  bool
		expectedStatus int
		expectError    bool
	}{
		{
			name:           "join a group",
			groupID:        "1",
			groupExists:    true,
			groupActive:    true,
			alreadyMember:  false,
			expectedStatus: http.StatusCreated,
			expectError:    false,
		},
		{
			name:           "already a member - absorbed as success",
			groupID:        "1",
			groupExists:    true,
			groupActive:    true,
			alreadyMember:  true,
			expectedStatus: http.StatusOK,
			expectError:    false,
		},
		{
			name:           "inactive group rejects new members",
			groupID:        "1",
			groupExists:    true,
			groupActive:    false,
			expectedStatus: http.StatusForbidden,
			expectError:    true,
		},
		{
			name:           "group not found",
			groupID:        "999",
			groupExists:    false,
			expectedStatus: http.StatusNotFound,
			expectError:    true,
		},
		{
			name:           "invalid group ID",
			groupID:        "invalid",
			expectedStatus: http.StatusBadRequest,
			expectError:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			now := time.Now()

			if tt.groupID != "invalid" {
				if tt.groupExists {
					groupRows := sqlmock.NewRows(groupColumnNames).
						AddRow(1, "Test Group", "A test group", tt.groupActive, now, now, 1, 1)
					mock.ExpectQuery("SELECT").WillReturnRows(groupRows)

					if tt.groupActive {
						if tt.alreadyMember {
							memberRows := sqlmock.NewRows(userGroupColumnNames).
								AddRow(9, 1, 1, true, 1, 1, now, now)
							mock.ExpectQuery("SELECT").WillReturnRows(memberRows)
						} else {
							mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows(userGroupColumnNames))
							mock.ExpectExec("INSERT").WillReturnResult(sqlmock.NewResult(1, 1))
						}
					}
				} else {
					mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows(groupColumnNames))
				}
			}

			c, w := SetupTestContext()
			SetAuthenticatedUser(c, MockUser(), false)
			c.Params = []gin.Param{{Key: "group_profile_id", Value: tt.groupID}}
			c.Request = httptest.NewRequest("POST", "/groups/"+tt.groupID+"/join", nil)

			JoinGroup(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			_ = json.Unmarshal(w.Body.Bytes(), &response)

			if tt.expectError {
				assert.NotNil(t, response["error"])
			} else {
				assert.NotNil(t, response["membership"])
				membership := response["membership"].(map[string]interface{})
				assert.Equal(t, float64(1), membership["groupId"])
				assert.Equal(t, true, membership["isActive"])
			}
		})
	}
}

// Test GetGroup - members and admins only
func TestGetGroup(t *testing.T) {
	tests := []struct {
		name           string
		groupID        string
		isMember       bool
		isAdmin        bool
		groupExists    bool
		expectedStatus int
		expectError    bool
	}{
		{
			name:           "member fetches the group",
			groupID:        "1",
			isMember:       true,
			groupExists:    true,
			expectedStatus: http.StatusOK,
			expectError:    false,
		},
		{
			name:           "admin fetches without membership",
			groupID:        "1",
			isAdmin:        true,
			groupExists:    true,
			expectedStatus: http.StatusOK,
			expectError:    false,
		},
		{
			name:           "non-member is rejected",
			groupID:        "1",
			groupExists:    true,
			expectedStatus: http.StatusForbidden,
			expectError:    true,
		},
		{
			name:           "group not found",
			groupID:        "999",
			isMember:       true,
			groupExists:    false,
			expectedStatus: http.StatusNotFound,
			expectError:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			memberCount := int64(0)
			if tt.isMember {
				memberCount = 1
			}
			mock.ExpectQuery("SELECT COUNT").
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(memberCount))

			if tt.isMember || tt.isAdmin {
				if tt.groupExists {
					now := time.Now()
					groupRows := sqlmock.NewRows(groupColumnNames).
						AddRow(1, "Test Group", "A test group", true, now, now, 1, 1)
					mock.ExpectQuery("SELECT").WillReturnRows(groupRows)
				} else {
					mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows(groupColumnNames))
				}
			}

			c, w := SetupTestContext()
			user := MockUser()
			if tt.isAdmin {
				user = MockAdminUser()
			}
			SetAuthenticatedUser(c, user, tt.isAdmin)
			c.Params = []gin.Param{{Key: "group_profile_id", Value: tt.groupID}}
			c.Request = httptest.NewRequest("GET", "/groups/"+tt.groupID, nil)

			GetGroup(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			_ = json.Unmarshal(w.Body.Bytes(), &response)

			if tt.expectError {
				assert.NotNil(t, response["error"])
			} else {
				assert.Equal(t, "Test Group", response["groupName"])
			}
		})
	}
}

// Test GetGroupMembers - active memberships joined to profiles
func TestGetGroupMembers(t *testing.T) {
	tests := []struct {
		name           string
		isMember       bool
		hasMembers     bool
		expectedStatus int
		expectError    bool
	}{
		{
			name:           "member lists members",
			isMember:       true,
			hasMembers:     true,
			expectedStatus: http.StatusOK,
			expectError:    false,
		},
		{
			name:           "empty member list",
			isMember:       true,
			hasMembers:     false,
			expectedStatus: http.StatusOK,
			expectError:    false,
		},
		{
			name:           "non-member is rejected",
			isMember:       false,
			expectedStatus: http.StatusForbidden,
			expectError:    true,
		},
	}

	memberColumns := []string{"user_profile_id", "username", "display_name", "avatar_url"}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			memberCount := int64(0)
			if tt.isMember {
				memberCount = 1
			}
			mock.ExpectQuery("SELECT COUNT").
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(memberCount))

			if tt.isMember {
				memberRows := sqlmock.NewRows(memberColumns)
				if tt.hasMembers {
					memberRows.AddRow(1, "testuser", "Test User", nil).
						AddRow(3, "otheruser", "Other User", nil)
				}
				mock.ExpectQuery("SELECT").WillReturnRows(memberRows)
			}

			c, w := SetupTestContext()
			SetAuthenticatedUser(c, MockUser(), false)
			c.Params = []gin.Param{{Key: "group_profile_id", Value: "1"}}
			c.Request = httptest.NewRequest("GET", "/groups/1/members", nil)

			GetGroupMembers(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			_ = json.Unmarshal(w.Body.Bytes(), &response)

			if tt.expectError {
				assert.NotNil(t, response["error"])
			} else {
				members := response["members"].([]interface{})
				if tt.hasMembers {
					assert.Len(t, members, 2)
				} else {
					assert.Len(t, members, 0)
				}
			}
		})
	}
}
