package utils

import (
	"log"
	"time"

	"github.com/go-resty/resty/v2"
)

// ProbeLink checks whether an external certificate program link responds.
// Unreachable links are flagged on the program, not rejected, so a flaky
// host does not block instructors.
func ProbeLink(link string) bool {
	if link == "" {
		return false
	}

	client := resty.New().SetTimeout(5 * time.Second)

	resp, err := client.R().Head(link)
	if err != nil {
		// Some hosts refuse HEAD; retry with GET before giving up
		resp, err = client.R().Get(link)
	}
	if err != nil {
		log.Printf("Link probe failed for %s: %v", link, err)
		return false
	}

	return resp.StatusCode() < 400
}
