package handlers

// AppHandlers bundles every HTTP handler for route registration.
type AppHandlers struct {
	AuthHandler        *AuthHandler
	UserHandler        *UserHandler
	ShelterHandler     *ShelterHandler
	RecruitmentHandler *RecruitmentHandler
	ApplicationHandler *ApplicationHandler
	HistoryHandler     *HistoryHandler
}
