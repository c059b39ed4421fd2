package dto

type SpecializationListResponse struct {
	Specializations []string `json:"specializations"`
	Total           int      `json:"total"`
}

type DoctorSummaryResponse struct {
	ID             int64  `json:"id"`
	FullName       string `json:"full_name"`
	Specialization string `json:"specialization"`
}

type DoctorListResponse struct {
	Doctors []DoctorSummaryResponse `json:"doctors"`
	Total   int                     `json:"total"`
}

type PatientSummaryResponse struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
}

type PatientListResponse struct {
	Patients []PatientSummaryResponse `json:"patients"`
	Total    int                      `json:"total"`
}
