package main

import (
	"errors"
	"html"
	"log"
	"net/http"
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/cyber-portfolio/internal/config"
	"github.com/Zachkp/cyber-portfolio/internal/contact"
	"github.com/Zachkp/cyber-portfolio/internal/content"
	"github.com/Zachkp/cyber-portfolio/internal/effects"
	"github.com/Zachkp/cyber-portfolio/internal/store"
	"github.com/Zachkp/cyber-portfolio/internal/theme"
)

// app holds everything the handlers share. There are no package-level singletons.
type app struct {
	cfg       *config.Config
	portfolio *content.Portfolio // nil when the content failed to load
	store     *store.Store
	contact   *contact.Service
	clock     effects.Clock
	tracker   *visitorTracker
	admin     *adminAuth
}

func newApp(cfg *config.Config, st *store.Store, portfolio *content.Portfolio, sender contact.Sender) *app {
	tracker := newVisitorTracker(st, generateToken())
	return &app{
		cfg:       cfg,
		portfolio: portfolio,
		store:     st,
		contact:   contact.NewService(sender, st, log.Default()),
		clock:     effects.NewRealClock(),
		tracker:   tracker,
		admin:     newAdminAuth(cfg.Admin, tracker),
	}
}

func main() {
	cfg, err := config.Load(os.Getenv("PORTFOLIO_CONFIG"))
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	st, err := store.Open(cfg.Server.DatabasePath)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer st.Close()

	portfolio, err := content.Load(cfg.Server.ContentPath)
	if err != nil {
		log.Printf("Error loading portfolio content: %v", err)
	}

	sender := contact.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Pass, cfg.SMTP.To)
	a := newApp(cfg, st, portfolio, sender)

	log.Printf("Admin access available at: /admin/login")
	if gin.Mode() == gin.DebugMode {
		log.Printf("Admin token (dev only): %s", a.admin.token)
	}
	log.Println("Privacy: Visitor tracking enabled with hashed IP addresses")

	// Privacy cleanup once per start
	a.tracker.cleanupAsync()

	r := a.router()
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Printf("Server stopped: %v", err)
	}
	a.tracker.Wait()
}

func (a *app) router() *gin.Engine {
	r := gin.Default()
	r.LoadHTMLGlob(a.cfg.Server.TemplateGlob)

	r.Static("/images", a.cfg.Server.ImagesDir)
	r.Static("/static", a.cfg.Server.StaticDir)

	r.Use(a.tracker.middleware())

	r.GET("/", a.index)
	r.GET("/api/portfolio", a.portfolioJSON)
	r.GET("/api/effects", a.effectsJSON)
	r.GET("/hero/typed", a.heroTyped)
	r.GET("/go/:section", a.goSection)
	r.GET("/certifications/:id", a.certification)

	r.GET("/theme", a.currentTheme)
	r.POST("/theme/toggle", a.toggleTheme)

	// HTMX Contact form endpoint - returns just the form HTML
	r.GET("/contact-form", func(c *gin.Context) {
		c.HTML(http.StatusOK, "contact.html", gin.H{
			"title":  "Contact Me",
			"fields": contact.Submission{},
		})
	})
	r.POST("/contact", a.submitContact)

	a.setupAdminRoutes(r)
	return r
}

// heroPhrases picks the typewriter rotation: config, then content, then built-in copy
func (a *app) heroPhrases() []string {
	if len(a.cfg.Effects.Phrases) > 0 {
		return a.cfg.Effects.Phrases
	}
	if a.portfolio != nil {
		if len(a.portfolio.HeroTitles) > 0 {
			return a.portfolio.HeroTitles
		}
		if a.portfolio.PersonalInfo.Title != "" {
			return []string{a.portfolio.PersonalInfo.Title}
		}
	}
	return DefaultHeroTitles
}

func (a *app) themeFor(c *gin.Context) *theme.Manager {
	theme.RequestHint(c.Writer.Header())
	m, err := theme.NewManager(
		theme.CookieStore{Request: c.Request, Writer: c.Writer},
		theme.SystemPreference(c.Request),
		theme.Glow, theme.SectionTitles,
	)
	if err != nil {
		log.Printf("Error loading theme preference: %v", err)
	}
	return m
}

func (a *app) index(c *gin.Context) {
	if a.portfolio == nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"error": ContentLoadError,
		})
		return
	}

	m := a.themeFor(c)
	c.HTML(http.StatusOK, "index.html", gin.H{
		"p":             a.portfolio,
		"sections":      content.Sections,
		"categories":    a.portfolio.SkillCategories(),
		"levels":        a.portfolio.Levels(),
		"theme":         m.Current(),
		"themeClasses":  strings.Join(m.Classes(), " "),
		"phrases":       a.heroPhrases(),
		"boot":          BootSequence,
		"accessGranted": AccessGranted,
	})
}

func (a *app) portfolioJSON(c *gin.Context) {
	if a.portfolio == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": ContentLoadError})
		return
	}
	c.JSON(http.StatusOK, a.portfolio)
}

func (a *app) effectsJSON(c *gin.Context) {
	e := a.cfg.Effects
	c.JSON(http.StatusOK, gin.H{
		"rain": gin.H{
			"glyphSize":   e.GlyphSize,
			"alphabet":    e.Alphabet,
			"fadeAlpha":   e.FadeAlpha,
			"resetChance": e.ResetChance,
			"intervalMs":  e.RainInterval.Milliseconds(),
		},
		"pulse": gin.H{
			"durationMs": e.PulseDuration.Milliseconds(),
		},
		"typewriter": gin.H{
			"phrases":       a.heroPhrases(),
			"typeSpeedMs":   e.TypeSpeed.Milliseconds(),
			"deleteSpeedMs": e.CyclerOptions().DeleteSpeed.Milliseconds(),
			"holdDelayMs":   e.HoldDelay.Milliseconds(),
		},
	})
}

// heroTyped streams typewriter frames as server-sent events until the client goes away
func (a *app) heroTyped(c *gin.Context) {
	frames := make(chan string, 1)
	cycler, err := effects.NewCycler(a.clock, a.heroPhrases(), a.cfg.Effects.CyclerOptions(), func(text string) {
		// Keep only the newest frame; a slow client skips intermediate ones
		for {
			select {
			case frames <- text:
				return
			default:
			}
			select {
			case <-frames:
			default:
			}
		}
	})
	if err != nil {
		log.Printf("Error starting hero typewriter: %v", err)
		c.Status(http.StatusNoContent)
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	cycler.Start()
	defer cycler.Stop()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case text := <-frames:
			c.SSEvent("message", html.EscapeString(text))
			c.Writer.Flush()
		}
	}
}

func (a *app) goSection(c *gin.Context) {
	s, ok := content.ResolveSection(c.Param("section"))
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	c.Redirect(http.StatusFound, "/#"+s.ID)
}

func (a *app) certification(c *gin.Context) {
	if a.portfolio == nil {
		c.Status(http.StatusNoContent)
		return
	}
	cert, ok := a.portfolio.Certification(c.Param("id"))
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	c.HTML(http.StatusOK, "certification.html", gin.H{
		"cert": cert,
	})
}

func (a *app) currentTheme(c *gin.Context) {
	m := a.themeFor(c)
	c.JSON(http.StatusOK, gin.H{
		"theme":    m.Current(),
		"explicit": m.Explicit(),
		"classes":  m.Classes(),
	})
}

func (a *app) toggleTheme(c *gin.Context) {
	m := a.themeFor(c)
	next, err := m.Toggle()
	if err != nil {
		log.Printf("Error saving theme: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save theme"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"theme":   next,
		"classes": m.Classes(),
	})
}

// Handle contact form submission with HTMX, or JSON for API clients
func (a *app) submitContact(c *gin.Context) {
	var sub contact.Submission
	if err := c.ShouldBind(&sub); err != nil {
		log.Printf("Error binding contact form: %v", err)
	}

	err := a.contact.Submit(c.Request.Context(), sub)
	n := contact.Notify(err)

	// The visitor's input survives a failed attempt
	fields := sub
	if err == nil {
		fields = contact.Submission{}
	}

	switch c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) {
	case gin.MIMEJSON:
		status := http.StatusOK
		var verr *contact.ValidationError
		var terr *contact.TransportError
		switch {
		case errors.As(err, &verr):
			status = http.StatusUnprocessableEntity
		case errors.As(err, &terr):
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{
			"notification": n,
			"ttlMs":        n.TTLMillis(),
			"fields":       fields,
		})
	default:
		c.HTML(http.StatusOK, "contact-toast.html", gin.H{
			"title":        "Contact Me",
			"notification": n,
			"ttlMs":        n.TTLMillis(),
			"fields":       fields,
		})
	}
}
