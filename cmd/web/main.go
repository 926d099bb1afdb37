// @title           Jobzworld API
// @version         1.0
// @description     Job marketplace backend: accounts, guest onboarding, candidate and company profiles, job postings and video interviews.
// @contact.name    Jobzworld
// @contact.email   support@jobzworld.com
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:3001
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.

package main

import "jobmarket_backend/internal/app"

func main() {
	app.Run()
}
