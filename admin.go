// admin.go - privacy-conscious visitor tracking and the admin area
package main

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/cyber-portfolio/internal/config"
	"github.com/Zachkp/cyber-portfolio/internal/store"
)

const (
	adminCookie     = "admin_token"
	visitorPageSize = 200
	messagePageSize = 100
)

func generateToken() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		log.Fatal("Failed to generate admin token:", err)
	}
	return hex.EncodeToString(bytes)
}

// visitorTracker records page views with a salted IP hash. Writes run in the
// background; Wait blocks until they have all landed.
type visitorTracker struct {
	store *store.Store
	salt  string
	now   func() time.Time
	wg    sync.WaitGroup
}

func newVisitorTracker(st *store.Store, salt string) *visitorTracker {
	return &visitorTracker{store: st, salt: salt, now: time.Now}
}

// Hash IP address for privacy compliance (consistent per IP)
func (t *visitorTracker) hashIP(ip string) string {
	hash := sha256.New()
	hash.Write([]byte(ip + t.salt))
	return hex.EncodeToString(hash.Sum(nil))[:16]
}

func untracked(path string) bool {
	for _, prefix := range []string{"/static/", "/images/", "/admin/", "/favicon", "/privacy", "/hero/typed"} {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func (t *visitorTracker) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if untracked(path) || c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		t.track(c.ClientIP(), c.GetHeader("User-Agent"), path)
		c.Next()
	}
}

func (t *visitorTracker) track(ip, userAgent, path string) {
	hashed := t.hashIP(ip)
	at := t.now()
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		if err := t.store.RecordVisit(context.Background(), hashed, userAgent, path, at); err != nil {
			log.Printf("Error recording visitor: %v", err)
		}
	}()
}

// cleanup removes visitor records older than twelve months
func (t *visitorTracker) cleanup(ctx context.Context) (int64, error) {
	n, err := t.store.CleanupVisitors(ctx, t.now().AddDate(0, -12, 0))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.Printf("Privacy cleanup: Removed %d visitor records older than 12 months", n)
	}
	return n, nil
}

func (t *visitorTracker) cleanupAsync() {
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		if _, err := t.cleanup(context.Background()); err != nil {
			log.Printf("Error cleaning up old visitor data: %v", err)
		}
	}()
}

// Wait blocks until background writes have finished
func (t *visitorTracker) Wait() {
	t.wg.Wait()
}

// adminAuth issues and checks the session token for one server instance
type adminAuth struct {
	token    string
	username string
	password string
	tracker  *visitorTracker
}

func newAdminAuth(cfg config.AdminConfig, tracker *visitorTracker) *adminAuth {
	if gin.Mode() == gin.DebugMode && cfg.Password == config.Default().Admin.Password {
		log.Println("WARNING: Using default admin password. Set ADMIN_PASSWORD environment variable.")
	}
	return &adminAuth{
		token:    generateToken(),
		username: cfg.Username,
		password: cfg.Password,
		tracker:  tracker,
	}
}

func (a *adminAuth) valid(username, password string) bool {
	u := subtle.ConstantTimeCompare([]byte(username), []byte(a.username))
	p := subtle.ConstantTimeCompare([]byte(password), []byte(a.password))
	return u&p == 1
}

// Middleware to check admin authentication
func (a *adminAuth) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (a *app) stats(c *gin.Context) (*store.Stats, bool) {
	stats, err := a.store.Stats(c.Request.Context(), time.Now())
	if err != nil {
		log.Printf("Error loading admin stats: %v", err)
		return nil, false
	}
	return stats, true
}

func (a *app) setupAdminRoutes(r *gin.Engine) {
	auth := a.admin

	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"title":  "Privacy Policy",
			"notice": PrivacyNotice,
		})
	})

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{
			"title": "Admin Login",
		})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		who := auth.tracker.hashIP(c.ClientIP())
		if !auth.valid(c.PostForm("username"), c.PostForm("password")) {
			log.Printf("Failed admin login attempt from %s", who)
			c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
				"title": "Admin Login",
				"error": "Invalid credentials",
			})
			return
		}

		// Session cookie (24 hours)
		c.SetCookie(adminCookie, auth.token, 3600*24, "/admin", "", false, true)
		log.Printf("Admin login successful from %s", who)
		c.Redirect(http.StatusFound, "/admin/dashboard")
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
		log.Printf("Admin logout from %s", auth.tracker.hashIP(c.ClientIP()))
		c.Redirect(http.StatusFound, "/admin/login")
	})

	adminGroup := r.Group("/admin")
	adminGroup.Use(auth.middleware())

	adminGroup.GET("/dashboard", func(c *gin.Context) {
		stats, ok := a.stats(c)
		if !ok {
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"stats": stats,
		})
	})

	adminGroup.GET("/api/stats", func(c *gin.Context) {
		stats, ok := a.stats(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load statistics"})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	adminGroup.GET("/messages", func(c *gin.Context) {
		messages, err := a.store.Messages(c.Request.Context(), messagePageSize)
		if err != nil {
			log.Printf("Error loading messages: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load messages",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-messages.html", gin.H{
			"messages": messages,
		})
	})

	adminGroup.DELETE("/messages/:id", func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message id"})
			return
		}

		found, err := a.store.DeleteMessage(c.Request.Context(), id)
		if err != nil {
			log.Printf("Error deleting message %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete message"})
			return
		}
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
			return
		}

		log.Printf("Message %d deleted by admin from %s", id, auth.tracker.hashIP(c.ClientIP()))
		c.JSON(http.StatusOK, gin.H{"message": "Message deleted successfully"})
	})

	adminGroup.GET("/visitors", func(c *gin.Context) {
		visitors, err := a.store.RecentVisitors(c.Request.Context(), visitorPageSize)
		if err != nil {
			log.Printf("Error loading visitors: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load visitors",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{
			"visitors": visitors,
		})
	})

	adminGroup.POST("/privacy/cleanup", func(c *gin.Context) {
		n, err := a.tracker.cleanup(c.Request.Context())
		if err != nil {
			log.Printf("Error cleaning up old visitor data: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Privacy cleanup failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup complete", "removed": n})
	})

	// Statistics export (for backups or analysis)
	adminGroup.GET("/export/stats", func(c *gin.Context) {
		stats, ok := a.stats(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load statistics"})
			return
		}

		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		log.Printf("Admin stats exported by %s", auth.tracker.hashIP(c.ClientIP()))
		c.JSON(http.StatusOK, stats)
	})
}
