package main

var (
	// Hero typewriter rotation when neither config nor content provide one
	DefaultHeroTitles = []string{
		"AI & Full-Stack Developer",
		"Unity Game Developer",
		"Computer Vision Engineer",
	}

	// Boot lines shown while the page script brings the effects up
	BootSequence = []string{
		"> Initializing portfolio...",
		"> Loading user profile...",
		"> Connecting to neural network...",
	}

	AccessGranted = ">>> ACCESS GRANTED <<<"

	ContentLoadError = "Error loading portfolio data"

	PrivacyNotice = `Visits are counted with a salted hash of your IP address, never the address itself.
	Requests carrying a Do Not Track header are not counted at all, and records older than
	twelve months are deleted automatically. Contact form messages are kept only so they can
	be answered.`
)
