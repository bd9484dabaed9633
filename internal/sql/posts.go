package sql

import (
	"errors"

	apierrors "api/internal/errors"
	"api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func CountPosts(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Post{}).Count(&count).Error
	return count, err
}

func GetPostByID(db *gorm.DB, postID uuid.UUID) (models.Post, error) {
	var post models.Post

	if err := db.Where("id = ?", postID).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Post{}, apierrors.NewAPIError(404, apierrors.ErrPostNotFound)
		}
		return models.Post{}, err
	}

	return post, nil
}

// SearchPosts runs the composed filter scopes with pagination, returning
// the page and the unpaginated total.
func SearchPosts(
	db *gorm.DB,
	params models.AdminPostSearchQueryParams,
) ([]models.Post, int64, error) {
	scopes := PostSearchScopes(params)

	var total int64
	if err := db.Model(&models.Post{}).Scopes(scopes...).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit, offset := params.Limits()

	var posts []models.Post
	err := db.Model(&models.Post{}).Scopes(scopes...).
		Order("posts.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

func UpdatePostVisibility(db *gorm.DB, postID uuid.UUID, isPublic bool) (models.Post, error) {
	post, err := GetPostByID(db, postID)
	if err != nil {
		return models.Post{}, err
	}

	if err = db.Model(&post).Update("is_public", isPublic).Error; err != nil {
		return models.Post{}, err
	}

	post.IsPublic = isPublic
	return post, nil
}

func DeletePost(db *gorm.DB, postID uuid.UUID) (models.Post, error) {
	post, err := GetPostByID(db, postID)
	if err != nil {
		return models.Post{}, err
	}

	if err = db.Delete(&models.Post{}, "id = ?", postID).Error; err != nil {
		return models.Post{}, err
	}

	return post, nil
}
