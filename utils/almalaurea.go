package utils

import (
	"fmt"
	"log"

	"github.com/therossee/thesis-proposals-sub001/config"

	"github.com/go-resty/resty/v2"
)

// AlmaLaureaRegistration is the payload sent to the AlmaLaurea
// registry when a thesis reaches the almalaurea stage.
type AlmaLaureaRegistration struct {
	Matricola string `json:"matricola"`
	Title     string `json:"title"`
	Language  string `json:"language"`
}

// NotifyAlmaLaurea pings the AlmaLaurea registry for a thesis entering
// the almalaurea stage. Best effort: a failure is returned for logging
// but must never block the transition.
func NotifyAlmaLaurea(reg AlmaLaureaRegistration) error {
	if config.AppConfig.AlmaLaureaApiKey == "" {
		log.Println("AlmaLaurea notification skipped: no API key configured")
		return nil
	}

	client := resty.New()

	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", "Bearer "+config.AppConfig.AlmaLaureaApiKey).
		SetBody(reg).
		Post(config.AppConfig.AlmaLaureaApiUrl + "theses/registrations")
	if err != nil {
		return err
	}

	if resp.StatusCode() >= 300 {
		return fmt.Errorf("almalaurea registry returned status %d", resp.StatusCode())
	}
	return nil
}
