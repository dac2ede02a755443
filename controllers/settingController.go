package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/CircleTalk/initializers"
	"github.com/CircleTalk/models"
	"github.com/CircleTalk/services"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
)

// settings is the observable state behind every admin toggle. Reads see the
// optimistic value immediately; a failed authoritative write rolls the value
// back before the handler responds.
var settings = services.NewOptimisticCoordinator()

func groupActiveKey(groupID int) string {
	return fmt.Sprintf("group:%d:is_active", groupID)
}

func userAdminKey(userID int) string {
	return fmt.Sprintf("user:%d:admin", userID)
}

// ToggleGroupActive flips a group's activation flag through the optimistic
// coordinator.
func ToggleGroupActive(c *gin.Context) {
	currentUser := c.MustGet("currentUser").(models.UserProfile)

	groupID, err := strconv.Atoi(c.Param("group_profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group profile ID", "details": err.Error()})
		return
	}

	var toggleData models.GroupActiveToggle
	if err := c.ShouldBindJSON(&toggleData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	var group models.GroupProfile
	found, err := initializers.DB.From("group_profile").
		Where(goqu.C("group_profile_id").Eq(groupID)).
		ScanStruct(&group)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch group"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	key := groupActiveKey(groupID)
	settings.Seed(key, group.Is_Active)

	settled := settings.Toggle(key, toggleData.Is_Active, func(ctx context.Context) error {
		update := initializers.DB.Update("group_profile").
			Set(goqu.Record{
				"is_active":       toggleData.Is_Active,
				"updated_by":      currentUser.User_Profile_ID,
				"datetime_update": goqu.L("NOW()"),
			}).
			Where(goqu.C("group_profile_id").Eq(groupID))

		result, err := update.Executor().ExecContext(ctx)
		if err != nil {
			return err
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			return fmt.Errorf("group %d not updated", groupID)
		}
		return nil
	})

	if err := <-settled; err != nil {
		log.Printf("Failed to toggle group %d activation: %v", groupID, err)
		value, _ := settings.Value(key)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":    "Failed to update group activation",
			"isActive": value,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Group activation updated",
		"isActive": toggleData.Is_Active,
	})
}

// ToggleUserAdmin grants or revokes the admin permission through the
// optimistic coordinator.
func ToggleUserAdmin(c *gin.Context) {
	currentUser := c.MustGet("currentUser").(models.UserProfile)

	userID, err := strconv.Atoi(c.Param("user_profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user profile ID", "details": err.Error()})
		return
	}

	var toggleData models.UserAdminToggle
	if err := c.ShouldBindJSON(&toggleData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	var user models.UserProfile
	found, err := initializers.DB.From("user_profile").
		Where(goqu.C("user_profile_id").Eq(userID)).
		ScanStruct(&user)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	key := userAdminKey(userID)
	settings.Seed(key, user.Admin)

	settled := settings.Toggle(key, toggleData.Admin, func(ctx context.Context) error {
		update := initializers.DB.Update("user_profile").
			Set(goqu.Record{
				"admin":           toggleData.Admin,
				"updated_by":      currentUser.User_Profile_ID,
				"datetime_update": goqu.L("NOW()"),
			}).
			Where(goqu.C("user_profile_id").Eq(userID))

		result, err := update.Executor().ExecContext(ctx)
		if err != nil {
			return err
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			return fmt.Errorf("user %d not updated", userID)
		}
		return nil
	})

	if err := <-settled; err != nil {
		log.Printf("Failed to toggle admin for user %d: %v", userID, err)
		value, _ := settings.Value(key)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update admin permission",
			"admin": value,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Admin permission updated",
		"admin":   toggleData.Admin,
	})
}

// AssignFeatureSlot assigns the featured-post slot through the optimistic
// coordinator. The target must be a visible top-level post.
func AssignFeatureSlot(c *gin.Context) {
	currentUser := c.MustGet("currentUser").(models.UserProfile)

	var assignData models.FeatureSlotAssign
	if err := c.ShouldBindJSON(&assignData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	post, found, err := fetchComment(assignData.Post_ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch post"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if post.Parent_ID != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only top-level posts can be featured"})
		return
	}
	if post.Status == models.CommentStatusReported {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reported posts cannot be featured"})
		return
	}

	settled := settings.Toggle(models.SettingFeatureSlot, assignData.Post_ID, func(ctx context.Context) error {
		setting := models.AppSetting{
			Setting_Key:   models.SettingFeatureSlot,
			Setting_Value: strconv.Itoa(assignData.Post_ID),
			Updated_By:    currentUser.User_Profile_ID,
		}

		insert := initializers.DB.Insert("app_setting").
			Rows(setting).
			OnConflict(goqu.DoUpdate("setting_key", goqu.Record{
				"setting_value":   setting.Setting_Value,
				"updated_by":      setting.Updated_By,
				"datetime_update": goqu.L("NOW()"),
			}))

		_, err := insert.Executor().ExecContext(ctx)
		return err
	})

	if err := <-settled; err != nil {
		log.Printf("Failed to assign feature slot: %v", err)
		value, _ := settings.Value(models.SettingFeatureSlot)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":       "Failed to assign feature slot",
			"featureSlot": value,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Feature slot assigned",
		"featureSlot": assignData.Post_ID,
	})
}

// GetSettings reads the observable settings view, seeding the feature slot
// from the store on first access.
func GetSettings(c *gin.Context) {
	if _, tracked := settings.Value(models.SettingFeatureSlot); !tracked {
		var setting models.AppSetting
		found, err := initializers.DB.From("app_setting").
			Where(goqu.C("setting_key").Eq(models.SettingFeatureSlot)).
			ScanStruct(&setting)

		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings"})
			return
		}
		if found {
			if postID, err := strconv.Atoi(setting.Setting_Value); err == nil {
				settings.Seed(models.SettingFeatureSlot, postID)
			}
		}
	}

	featureSlot, _ := settings.Value(models.SettingFeatureSlot)

	c.JSON(http.StatusOK, gin.H{
		"featureSlot": featureSlot,
	})
}
