package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"filter-delivery-backend/database"
	"filter-delivery-backend/helpers"
	"filter-delivery-backend/middleware"
	"filter-delivery-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

var userCollection *mongo.Collection = database.OpenCollection(database.Client, "user")
var validate = validator.New()

const requestTimeout = 30 * time.Second

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	meta := helpers.AuditMeta{IP: c.ClientIP(), URI: c.Request.URL.RequestURI()}
	return helpers.WithAuditMeta(ctx, meta), cancel
}

func actor(c *gin.Context) models.AuthUser {
	user, _ := middleware.AuthUserFrom(c)
	return user
}

func HashPassword(password string) string {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		log.Panic().Err(err).Msg("bcrypt failed")
	}
	return string(bytes)
}

func VerifyPassword(userPassword string, storedPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedPassword), []byte(userPassword)) == nil
}

func Register() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		var user models.User
		if err := c.BindJSON(&user); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": err.Error()})
			return
		}
		if err := validate.Struct(&user); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": "invalid user payload", "details": err.Error()})
			return
		}

		count, err := userCollection.CountDocuments(ctx, bson.M{"email": user.Email})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "error occurred while checking the email"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "conflict", "message": "email already exists", "details": *user.Email})
			return
		}

		password := HashPassword(*user.Password)
		user.Password = &password
		user.ID = primitive.NewObjectID()
		user.User_id = user.ID.Hex()
		user.Created_at = time.Now()
		user.Updated_at = user.Created_at
		if user.Active == nil {
			active := true
			user.Active = &active
		}

		token, refreshToken, err := helpers.GenerateAllTokens(*user.Email, *user.Name, user.User_id, *user.Role)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "token generation failed"})
			return
		}
		user.Token = &token
		user.Refresh_token = &refreshToken

		if _, err := userCollection.InsertOne(ctx, user); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "conflict", "message": "email already exists", "details": *user.Email})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "user was not created"})
			return
		}

		helpers.RecordAudit(ctx, models.AuthUser{User_id: user.User_id, Name: *user.Name}, models.AuditActionCreate, "user", user.User_id, nil, user)
		user.Password = nil
		c.JSON(http.StatusCreated, user)
	}
}

func Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		var credentials struct {
			Email    *string `json:"email" validate:"required,email"`
			Password *string `json:"password" validate:"required"`
		}
		if err := c.BindJSON(&credentials); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": err.Error()})
			return
		}
		if err := validate.Struct(&credentials); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": "email and password are required"})
			return
		}

		var foundUser models.User
		err := userCollection.FindOne(ctx, bson.M{"email": credentials.Email}).Decode(&foundUser)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "email or password is incorrect"})
			return
		}
		if !VerifyPassword(*credentials.Password, *foundUser.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "email or password is incorrect"})
			return
		}
		if foundUser.Active != nil && !*foundUser.Active {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden", "message": "account is deactivated"})
			return
		}

		token, refreshToken, err := helpers.GenerateAllTokens(*foundUser.Email, *foundUser.Name, foundUser.User_id, *foundUser.Role)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "token generation failed"})
			return
		}
		if err := helpers.UpdateAllTokens(ctx, token, refreshToken, foundUser.User_id); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "login failed"})
			return
		}
		foundUser.Token = &token
		foundUser.Refresh_token = &refreshToken
		foundUser.Password = nil
		c.JSON(http.StatusOK, foundUser)
	}
}

func GetProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		caller := actor(c)
		var user models.User
		err := userCollection.FindOne(ctx, bson.M{"user_id": caller.User_id}).Decode(&user)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "user not found"})
			return
		}
		user.Password = nil
		c.JSON(http.StatusOK, user)
	}
}

func GetUsers() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		recordPerPage, err := strconv.Atoi(c.DefaultQuery("recordPerPage", "10"))
		if err != nil || recordPerPage < 1 {
			recordPerPage = 10
		}
		page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
		if err != nil || page < 1 {
			page = 1
		}
		skip := int64((page - 1) * recordPerPage)
		limit := int64(recordPerPage)

		opts := options.Find().
			SetSkip(skip).
			SetLimit(limit).
			SetSort(bson.D{{Key: "created_at", Value: -1}}).
			SetProjection(bson.M{"password": 0, "token": 0, "refresh_token": 0})
		cursor, err := userCollection.Find(ctx, bson.M{}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "error occurred while listing users"})
			return
		}
		allUsers := []models.User{}
		if err := cursor.All(ctx, &allUsers); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, allUsers)
	}
}

func GetUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		userId := c.Param("user_id")
		var user models.User
		err := userCollection.FindOne(ctx, bson.M{"user_id": userId}).Decode(&user)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "user not found"})
			return
		}
		user.Password = nil
		user.Token = nil
		user.Refresh_token = nil
		c.JSON(http.StatusOK, user)
	}
}

func UpdateUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		userId := c.Param("user_id")
		var patch models.UserUpdate
		if err := helpers.BindStrict(c, &patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": err.Error()})
			return
		}

		var before models.User
		if err := userCollection.FindOne(ctx, bson.M{"user_id": userId}).Decode(&before); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "user not found"})
			return
		}

		var updateObj primitive.D
		if patch.Name != nil {
			updateObj = append(updateObj, bson.E{Key: "name", Value: patch.Name})
		}
		if patch.Email != nil {
			updateObj = append(updateObj, bson.E{Key: "email", Value: patch.Email})
		}
		if patch.Password != nil {
			password := HashPassword(*patch.Password)
			updateObj = append(updateObj, bson.E{Key: "password", Value: password})
		}
		if patch.Role != nil {
			if *patch.Role != models.RoleAdmin && *patch.Role != models.RoleBackOffice &&
				*patch.Role != models.RoleFieldService && *patch.Role != models.RoleWarehouse {
				c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": "invalid role", "details": *patch.Role})
				return
			}
			updateObj = append(updateObj, bson.E{Key: "role", Value: patch.Role})
		}
		if patch.Permissions != nil {
			updateObj = append(updateObj, bson.E{Key: "permissions", Value: *patch.Permissions})
		}
		if patch.Active != nil {
			updateObj = append(updateObj, bson.E{Key: "active", Value: patch.Active})
		}
		if len(updateObj) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": "nothing to update"})
			return
		}
		updateObj = append(updateObj, bson.E{Key: "updated_at", Value: time.Now()})

		_, err := userCollection.UpdateOne(ctx, bson.M{"user_id": userId}, bson.D{{Key: "$set", Value: updateObj}})
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "conflict", "message": "email already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "user update failed"})
			return
		}

		var after models.User
		if err := userCollection.FindOne(ctx, bson.M{"user_id": userId}).Decode(&after); err == nil {
			helpers.RecordAudit(ctx, actor(c), models.AuditActionUpdate, "user", userId, before, after)
			after.Password = nil
			after.Token = nil
			after.Refresh_token = nil
			c.JSON(http.StatusOK, after)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "user updated"})
	}
}

func UpdateUserStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		userId := c.Param("user_id")
		var body struct {
			Active *bool `json:"active"`
		}
		if err := helpers.BindStrict(c, &body); err != nil || body.Active == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": "active flag is required"})
			return
		}

		var before models.User
		if err := userCollection.FindOne(ctx, bson.M{"user_id": userId}).Decode(&before); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "user not found"})
			return
		}

		update := bson.D{{Key: "$set", Value: bson.D{
			{Key: "active", Value: body.Active},
			{Key: "updated_at", Value: time.Now()},
		}}}
		if _, err := userCollection.UpdateOne(ctx, bson.M{"user_id": userId}, update); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "status update failed"})
			return
		}

		after := before
		after.Active = body.Active
		helpers.RecordAudit(ctx, actor(c), models.AuditActionUpdate, "user", userId, before, after)
		c.JSON(http.StatusOK, gin.H{"message": "user status updated"})
	}
}

func HandleWebSocket() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := helpers.RegisterWebSocket(c.Writer, c.Request); err != nil {
			log.Error().Err(err).Msg("websocket upgrade failed")
		}
	}
}
