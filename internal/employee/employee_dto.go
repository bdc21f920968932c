package employee

type CreateEmployeeRequest struct {
	FullName       string `json:"full_name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	EmployeeNumber string `json:"employee_number"`
	Phone          string `json:"phone"`
	JobTitle       string `json:"job_title"`
	HireDate       string `json:"hire_date" binding:"required"`
	Status         string `json:"status"`
	IsDriver       bool   `json:"is_driver"`
	LicenseNumber  string `json:"license_number"`
}

type UpdateEmployeeRequest struct {
	FullName       string `json:"full_name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	EmployeeNumber string `json:"employee_number"`
	Phone          string `json:"phone"`
	JobTitle       string `json:"job_title"`
	HireDate       string `json:"hire_date" binding:"required"`
	Status         string `json:"status"`
	IsDriver       bool   `json:"is_driver"`
	LicenseNumber  string `json:"license_number"`
}

type EmployeeResponse struct {
	ID             string `json:"id"`
	CompanyID      string `json:"company_id"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	EmployeeNumber string `json:"employee_number"`
	Phone          string `json:"phone,omitempty"`
	JobTitle       string `json:"job_title,omitempty"`
	HireDate       string `json:"hire_date"`
	Status         string `json:"status"`
	IsDriver       bool   `json:"is_driver"`
	LicenseNumber  string `json:"license_number,omitempty"`
}
