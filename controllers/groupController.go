package controllers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/CircleTalk/initializers"
	"github.com/CircleTalk/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
)

func CreateGroup(c *gin.Context) {
	user := c.MustGet("currentUser").(models.UserProfile)
	admin := c.MustGet("admin").(bool)

	// only admins for now
	if !admin {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Only admins can create groups"})
		return
	}

	var newGroup models.GroupCreate
	if err := c.BindJSON(&newGroup); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group := models.GroupProfile{
		Group_Name:        newGroup.Group_Name,
		Group_Description: newGroup.Group_Description,
		Is_Active:         true,
		Created_By:        user.User_Profile_ID,
		Updated_By:        user.User_Profile_ID,
	}

	insert := initializers.DB.Insert("group_profile").Rows(group).Returning("group_profile_id")

	var insertedID int
	_, err := insert.Executor().ScanVal(&insertedID)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create group"})
		return
	}

	group.Group_Profile_ID = insertedID

	// the creator joins their own group
	membership := models.UserGroup{
		User_Profile_ID:  user.User_Profile_ID,
		Group_Profile_ID: insertedID,
		Is_Active:        true,
		Created_By:       user.User_Profile_ID,
		Updated_By:       user.User_Profile_ID,
		Datetime_Create:  time.Now(),
		Datetime_Update:  time.Now(),
	}
	if _, err := initializers.DB.Insert("user_group").Rows(membership).Executor().Exec(); err != nil {
		log.Printf("Failed to add creator to group %d: %v", insertedID, err)
	}

	c.JSON(http.StatusCreated, group)
}

func GetGroup(c *gin.Context) {
	userID := c.MustGet("currentUser").(models.UserProfile).User_Profile_ID
	isAdmin := c.MustGet("admin").(bool)

	groupID, err := strconv.Atoi(c.Param("group_profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group profile ID"})
		return
	}

	member, err := isGroupMember(userID, groupID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check group membership"})
		return
	}
	if !member && !isAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have access to this group"})
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

	c.JSON(http.StatusOK, group)
}

func GetAllGroups(c *gin.Context) {
	var groups []models.GroupProfile
	err := initializers.DB.From("group_profile").
		Order(goqu.I("datetime_create").Desc()).
		ScanStructs(&groups)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch groups"})
		return
	}

	c.JSON(http.StatusOK, groups)
}

// JoinGroup adds the acting user to a group. Joining a group you already
// belong to is not an error; the existing membership is returned as-is.
func JoinGroup(c *gin.Context) {
	currentUser := c.MustGet("currentUser").(models.UserProfile)

	groupID, err := strconv.Atoi(c.Param("group_profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group profile ID", "details": err.Error()})
		return
	}

	var group models.GroupProfile
	found, err := initializers.DB.From("group_profile").
		Where(goqu.C("group_profile_id").Eq(groupID)).
		ScanStruct(&group)

	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch group", "details": err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}
	if !group.Is_Active {
		c.JSON(http.StatusForbidden, gin.H{"error": "This group is not accepting new members"})
		return
	}

	var existingEntry models.UserGroup
	memberFound, err := initializers.DB.From("user_group").
		Where(
			goqu.And(
				goqu.C("user_profile_id").Eq(currentUser.User_Profile_ID),
				goqu.C("group_profile_id").Eq(groupID),
			),
		).ScanStruct(&existingEntry)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing membership"})
		return
	}

	if memberFound {
		c.JSON(http.StatusOK, gin.H{
			"message":    "You are already a member of this group",
			"membership": existingEntry,
		})
		return
	}

	newEntry := models.UserGroup{
		User_Profile_ID:  currentUser.User_Profile_ID,
		Group_Profile_ID: groupID,
		Is_Active:        true,
		Created_By:       currentUser.User_Profile_ID,
		Updated_By:       currentUser.User_Profile_ID,
		Datetime_Create:  time.Now(),
		Datetime_Update:  time.Now(),
	}

	insert := initializers.DB.Insert("user_group").Rows(newEntry)

	_, err = insert.Executor().Exec()
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to join group"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Joined group successfully",
		"membership": newEntry,
	})
}

func GetGroupMembers(c *gin.Context) {
	userID := c.MustGet("currentUser").(models.UserProfile).User_Profile_ID
	isAdmin := c.MustGet("admin").(bool)

	groupID, err := strconv.Atoi(c.Param("group_profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group profile ID"})
		return
	}

	member, err := isGroupMember(userID, groupID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check group membership"})
		return
	}
	if !member && !isAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have access to this group"})
		return
	}

	query := initializers.DB.From("user_profile").
		Select(
			goqu.I("user_profile.user_profile_id"),
			goqu.I("user_profile.username"),
			goqu.I("user_profile.display_name"),
			goqu.I("user_profile.avatar_url"),
		).
		Join(
			goqu.T("user_group"),
			goqu.On(goqu.I("user_profile.user_profile_id").Eq(goqu.I("user_group.user_profile_id"))),
		).
		Where(
			goqu.And(
				goqu.I("user_group.group_profile_id").Eq(groupID),
				goqu.I("user_group.is_active").IsTrue(),
			),
		)

	var users []models.UserProfile
	err = query.ScanStructs(&users)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch group members"})
		return
	}

	if users == nil {
		users = []models.UserProfile{}
	}

	c.JSON(http.StatusOK, gin.H{"members": users})
}
