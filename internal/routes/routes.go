package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/coffeegram/coffee-backend/internal/handler"
	"github.com/coffeegram/coffee-backend/internal/middleware"
	"github.com/coffeegram/coffee-backend/pkg/jwt"
)

// Handlers groups everything the router mounts
type Handlers struct {
	Auth       *handler.AuthHandler
	User       *handler.UserHandler
	Friend     *handler.FriendHandler
	Chat       *handler.ChatHandler
	Post       *handler.PostHandler
	Comment    *handler.CommentHandler
	Collection *handler.CollectionHandler
	Payment    *handler.PaymentHandler
	Media      *handler.MediaHandler
	Push       *handler.PushHandler
}

// Register mounts all API routes
func Register(r *gin.Engine, jwtManager *jwt.Manager, h Handlers) {
	auth := middleware.JWTAuth(jwtManager)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/auth/register", h.Auth.Register)
		v1.POST("/auth/login", h.Auth.Login)
		v1.GET("/auth/me", auth, h.Auth.Me)

		users := v1.Group("/users", auth)
		{
			users.POST("/resolve", h.User.Resolve)
			users.PATCH("/me", h.User.UpdateProfile)
			users.GET("/:email", h.User.Get)
		}

		friends := v1.Group("/friends", auth)
		{
			friends.POST("", h.Friend.Send)
			friends.GET("", h.Friend.List)
			friends.POST("/:id/accept", h.Friend.Accept)
			friends.DELETE("/:id", h.Friend.Remove)
		}

		rooms := v1.Group("/rooms", auth)
		{
			rooms.POST("/resolve", h.Chat.ResolveRoom)
			rooms.GET("", h.Chat.ListRooms)
			rooms.GET("/:id", h.Chat.GetRoom)
			rooms.POST("/:id/read", h.Chat.MarkRead)
			rooms.PUT("/:id/config", h.Chat.UpdateConfig)
			rooms.POST("/:id/messages", h.Chat.SendMessage)
			rooms.GET("/:id/messages", h.Chat.ListMessages)
			rooms.POST("/:id/messages/:messageId/reactions", h.Chat.ReactMessage)
		}

		v1.GET("/badges", auth, h.Chat.Badges)

		posts := v1.Group("/posts")
		{
			posts.GET("", h.Post.Feed)
			posts.GET("/search", auth, h.Post.Search)
			posts.GET("/by/:email", h.Post.ListByAuthor)
			posts.POST("", auth, h.Post.Create)
			posts.GET("/:id", middleware.OptionalJWTAuth(jwtManager), h.Post.Get)
			posts.DELETE("/:id", auth, h.Post.Delete)
			posts.POST("/:id/reactions", auth, h.Post.React)
			posts.GET("/:id/comments", h.Comment.List)
			posts.POST("/:id/comments", auth, h.Comment.Create)
			posts.DELETE("/:id/comments/:commentId", auth, h.Comment.Delete)
		}

		collections := v1.Group("/collections", auth)
		{
			collections.POST("", h.Collection.Create)
			collections.GET("", h.Collection.List)
			collections.GET("/:id", h.Collection.Get)
			collections.DELETE("/:id", h.Collection.Delete)
			collections.POST("/:id/posts", h.Collection.AddPost)
			collections.DELETE("/:id/posts/:postId", h.Collection.RemovePost)
		}

		payments := v1.Group("/payments", auth)
		{
			payments.POST("/checkout", h.Payment.Checkout)
			payments.POST("/complete", h.Payment.Complete)
			payments.GET("", h.Payment.History)
		}

		media := v1.Group("/media", auth)
		{
			media.POST("", h.Media.Upload)
			media.POST("/sign", h.Media.SignUpload)
			media.GET("/url", h.Media.SignDownload)
		}

		push := v1.Group("/push", auth)
		{
			push.POST("/token", h.Push.Register)
			push.DELETE("/token", h.Push.Unregister)
		}
	}

	r.GET("/ws", auth, h.Chat.Stream)
}
