package dto

import (
	"github.com/meduzzen/company-directory-api/internal/models"
)

// CompanyDTO represents a company in API responses
type CompanyDTO struct {
	ID          uint64                   `json:"id"`
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	Location    string                   `json:"location"`
	Employees   *int                     `json:"employees"`
	Established *int                     `json:"established"`
	Services    []string                 `json:"services"`
	Visibility  models.CompanyVisibility `json:"visibility"`
	OwnerID     uint64                   `json:"owner_id"`
}

// CompaniesListDTO pairs a company page with the total count
type CompaniesListDTO struct {
	Companies []CompanyDTO `json:"companies"`
	Total     int64        `json:"total"`
}

// ToCompanyDTO converts a company model to its response DTO
func ToCompanyDTO(company models.Company) CompanyDTO {
	return CompanyDTO{
		ID:          company.ID,
		Name:        company.Name,
		Description: company.Description,
		Location:    company.Location,
		Employees:   company.Employees,
		Established: company.Established,
		Services:    company.Services,
		Visibility:  company.Visibility,
		OwnerID:     company.OwnerID,
	}
}

// ToCompaniesListDTO converts a company page to the list response
func ToCompaniesListDTO(companies []models.Company, total int64) CompaniesListDTO {
	dtos := make([]CompanyDTO, len(companies))
	for i, company := range companies {
		dtos[i] = ToCompanyDTO(company)
	}
	return CompaniesListDTO{Companies: dtos, Total: total}
}
