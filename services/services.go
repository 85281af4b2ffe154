package services

// Services bundles the application services handed to the router.
type Services struct {
	Auth     AuthService
	Users    UserService
	Articles ArticleService
	Media    MediaService
}
