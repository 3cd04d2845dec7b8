package dto

import (
	"time"

	"github.com/rentalhub/rentalhub-api/internal/models"
)

// PropertyCreateRequest is the payload for creating a property. Owner and
// manager are derived from the requester, never from the payload.
type PropertyCreateRequest struct {
	Name          string  `json:"name" binding:"required"`
	Address       string  `json:"address" binding:"required"`
	City          string  `json:"city" binding:"required"`
	State         string  `json:"state" binding:"required"`
	ZipCode       string  `json:"zip_code" binding:"required"`
	Country       string  `json:"country"`
	Category      string  `json:"category" binding:"required"`
	Bedrooms      int     `json:"bedrooms"`
	Bathrooms     int     `json:"bathrooms"`
	SquareFeet    int     `json:"square_feet"`
	MonthlyRent   float64 `json:"monthly_rent" binding:"required"`
	DepositAmount float64 `json:"deposit_amount" binding:"required"`
	Description   string  `json:"description"`
	Amenities     string  `json:"amenities"`
}

type PropertyImageResponse struct {
	ID        uint64 `json:"id"`
	URL       string `json:"url"`
	Caption   string `json:"caption"`
	IsPrimary bool   `json:"is_primary"`
}

type PropertyDocumentResponse struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

type PropertyResponse struct {
	ID                uint64                  `json:"id"`
	Name              string                  `json:"name"`
	Address           string                  `json:"address"`
	City              string                  `json:"city"`
	State             string                  `json:"state"`
	ZipCode           string                  `json:"zip_code"`
	Country           string                  `json:"country"`
	Category          string                  `json:"category"`
	Status            string                  `json:"status"`
	Bedrooms          int                     `json:"bedrooms"`
	Bathrooms         int                     `json:"bathrooms"`
	SquareFeet        int                     `json:"square_feet"`
	MonthlyRent       float64                 `json:"monthly_rent"`
	DepositAmount     float64                 `json:"deposit_amount"`
	Description       string                  `json:"description"`
	Amenities         string                  `json:"amenities"`
	OwnerID           uint64                  `json:"owner_id"`
	PropertyManagerID *uint64                 `json:"property_manager_id"`
	CreatedAt         time.Time               `json:"created_at"`
	UpdatedAt         time.Time               `json:"updated_at"`
	Images            []PropertyImageResponse `json:"images"`
}

func ToPropertyResponse(property models.Property) PropertyResponse {
	images := make([]PropertyImageResponse, 0, len(property.Images))
	for _, image := range property.Images {
		images = append(images, PropertyImageResponse{
			ID:        image.ID,
			URL:       image.URL,
			Caption:   image.Caption,
			IsPrimary: image.IsPrimary,
		})
	}

	return PropertyResponse{
		ID:                property.ID,
		Name:              property.Name,
		Address:           property.Address,
		City:              property.City,
		State:             property.State,
		ZipCode:           property.ZipCode,
		Country:           property.Country,
		Category:          string(property.Category),
		Status:            string(property.Status),
		Bedrooms:          property.Bedrooms,
		Bathrooms:         property.Bathrooms,
		SquareFeet:        property.SquareFeet,
		MonthlyRent:       property.MonthlyRent,
		DepositAmount:     property.DepositAmount,
		Description:       property.Description,
		Amenities:         property.Amenities,
		OwnerID:           property.OwnerID,
		PropertyManagerID: property.PropertyManagerID,
		CreatedAt:         property.CreatedAt,
		UpdatedAt:         property.UpdatedAt,
		Images:            images,
	}
}

func ToPropertyDocumentResponse(document models.PropertyDocument) PropertyDocumentResponse {
	return PropertyDocumentResponse{
		ID:          document.ID,
		Title:       document.Title,
		URL:         document.URL,
		Description: document.Description,
		UploadedAt:  document.UploadedAt,
	}
}
