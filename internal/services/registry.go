package services

// ServiceContainer holds every application service for dependency
// injection into the handlers.
type ServiceContainer struct {
	AuthService        AuthService
	UserService        UserService
	ShelterService     ShelterService
	RecruitmentService RecruitmentService
	ApplicationService ApplicationService
	HistoryService     HistoryService
	UploadService      UploadService
}
