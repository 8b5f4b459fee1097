package blog

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/streamvault/streamvault/internal/application"
	"github.com/streamvault/streamvault/pkg/apperror"
)

// Handlers render the server-side pages. Unlike the api server, failures
// here re-render the page with an inline message instead of a JSON body.
type Handlers struct {
	Svc    *Service
	Logger *logrus.Logger
}

func NewHandlers(svc *Service, logger *logrus.Logger) *Handlers {
	return &Handlers{Svc: svc, Logger: logger}
}

func (h *Handlers) user(c *gin.Context) any {
	if id, ok := IdentityFrom(c); ok {
		return id
	}
	return nil
}

func (h *Handlers) Home(c *gin.Context) {
	posts, err := h.Svc.ListPosts(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.HTML(http.StatusOK, "home.html", gin.H{"user": h.user(c), "blogs": posts})
}

func (h *Handlers) SignUpForm(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", gin.H{"user": h.user(c)})
}

func (h *Handlers) SignUp(c *gin.Context) {
	err := h.Svc.SignUp(c.Request.Context(),
		c.PostForm("fullname"), c.PostForm("email"), c.PostForm("password"))
	if err != nil {
		ae := apperror.From(err)
		c.HTML(ae.Code, "signup.html", gin.H{
			"user":     h.user(c),
			"error":    ae.Message,
			"fullname": c.PostForm("fullname"),
			"email":    c.PostForm("email"),
		})
		return
	}
	c.Redirect(http.StatusFound, "/user/signin")
}

func (h *Handlers) SignInForm(c *gin.Context) {
	c.HTML(http.StatusOK, "signin.html", gin.H{"user": h.user(c)})
}

// SignIn re-renders the form with an inline error on bad credentials
// instead of failing the request.
func (h *Handlers) SignIn(c *gin.Context) {
	email := c.PostForm("email")
	token, err := h.Svc.SignIn(c.Request.Context(), email, c.PostForm("password"))
	if err != nil {
		ae := apperror.From(err)
		c.HTML(ae.Code, "signin.html", gin.H{
			"user":  h.user(c),
			"error": ae.Message,
			"email": email,
		})
		return
	}
	c.SetCookie(TokenCookieName, token, int(h.Svc.Tokens.TTL.Seconds()), "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

func (h *Handlers) SignOut(c *gin.Context) {
	c.SetCookie(TokenCookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

func (h *Handlers) AddPostForm(c *gin.Context) {
	c.HTML(http.StatusOK, "add_blog.html", gin.H{"user": h.user(c)})
}

func (h *Handlers) AddPost(c *gin.Context) {
	id, _ := IdentityFrom(c)

	var cover *application.FileInput
	if fh, err := c.FormFile("coverImage"); err == nil {
		f, err := fh.Open()
		if err == nil {
			defer func() { _ = f.Close() }()
			cover = &application.FileInput{
				Reader:      f,
				Filename:    fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
			}
		}
	}

	p, err := h.Svc.CreatePost(c.Request.Context(), id.UserID, c.PostForm("title"), c.PostForm("body"), cover)
	if err != nil {
		ae := apperror.From(err)
		c.HTML(ae.Code, "add_blog.html", gin.H{
			"user":  h.user(c),
			"error": ae.Message,
			"title": c.PostForm("title"),
			"body":  c.PostForm("body"),
		})
		return
	}
	c.Redirect(http.StatusFound, "/blog/"+p.ID)
}

func (h *Handlers) ShowPost(c *gin.Context) {
	p, comments, err := h.Svc.PostWithComments(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.HTML(http.StatusOK, "blog.html", gin.H{
		"user":     h.user(c),
		"blog":     p,
		"comments": comments,
	})
}

func (h *Handlers) AddComment(c *gin.Context) {
	id, _ := IdentityFrom(c)
	blogID := c.Param("id")
	if err := h.Svc.AddComment(c.Request.Context(), blogID, id.UserID, c.PostForm("content")); err != nil {
		h.renderError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/blog/"+blogID)
}

func (h *Handlers) renderError(c *gin.Context, err error) {
	ae := apperror.From(err)
	if ae.Code >= 500 && h.Logger != nil {
		h.Logger.WithError(err).WithField("path", c.Request.URL.Path).Error("page failed")
	}
	c.HTML(ae.Code, "error.html", gin.H{"user": h.user(c), "message": ae.Message, "code": ae.Code})
}

// Routes mounts every page on the engine's root.
func (h *Handlers) Routes(r *gin.Engine, tm *TokenManager) {
	r.Use(SessionAuth(tm))

	r.GET("/", h.Home)
	r.GET("/blog/:id", h.ShowPost)

	user := r.Group("/user")
	{
		user.GET("/signup", h.SignUpForm)
		user.POST("/signup", h.SignUp)
		user.GET("/signin", h.SignInForm)
		user.POST("/signin", h.SignIn)
		user.GET("/signout", h.SignOut)
	}

	auth := r.Group("/", RequireSession())
	{
		auth.GET("/add-new", h.AddPostForm)
		auth.POST("/add-new", h.AddPost)
		auth.POST("/blog/:id/comment", h.AddComment)
	}
}
