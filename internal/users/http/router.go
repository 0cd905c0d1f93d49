package http

import "github.com/gin-gonic/gin"

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/get-role", h.GetRole)
	rg.POST("/update-role", h.UpdateRole)
	rg.GET("/get-users", h.GetUsers)
	rg.POST("/block-user", h.BlockUser)
	rg.POST("/unblock-user", h.UnblockUser)
	rg.POST("/delete-user", h.DeleteUser)
	rg.POST("/update-profile", h.UpdateProfile)
	rg.GET("/get-profile", h.GetProfile)
	rg.POST("/verify-mobile-manual", h.VerifyMobileManual)
	rg.POST("/create-user-profile", h.CreateUserProfile)
}
