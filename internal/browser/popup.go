// Package browser opens a real BMS window pre-filtered to one customer, so
// a staff member can jump from a worklist row straight to the live order.
package browser

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

const (
	searchBoxSelector = "input[placeholder*='이름 2글자']"
	loginWaitTimeout  = 10 * time.Second
	cardWaitTimeout   = 10 * time.Second
)

type Popup struct {
	webURL     string
	profileDir string
}

func NewPopup(webURL, profileDir string) *Popup {
	return &Popup{webURL: webURL, profileDir: profileDir}
}

// Open launches a visible browser on the BMS main page, logs in if the
// session is gone, searches the customer and clicks the order card. The
// browser stays open for the staff member.
func (p *Popup) Open(customer, orderCode, username, password string) error {
	const op = "browser.popup.Open"

	if username == "" || password == "" {
		return fmt.Errorf("%s: missing credentials", op)
	}

	l := launcher.New().
		Headless(false).
		Leakless(false).
		UserDataDir(p.profileDir).
		Set("disable-blink-features", "AutomationControlled").
		Set("window-size", "1600,950")

	controlURL, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%s: launch: %w", op, err)
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		return fmt.Errorf("%s: connect: %w", op, err)
	}

	page, err := b.Page(proto.TargetCreateTarget{URL: p.webURL})
	if err != nil {
		return fmt.Errorf("%s: open page: %w", op, err)
	}

	if err := p.ensureLoggedIn(page, username, password); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := p.searchAndClick(page, customer, orderCode); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ensureLoggedIn is idempotent: a persisted chrome profile usually still has
// the session, then the search box is already there.
func (p *Popup) ensureLoggedIn(page *rod.Page, username, password string) error {
	if _, err := page.Timeout(3 * time.Second).Element(searchBoxSelector); err == nil {
		return nil
	}

	user, err := page.Timeout(5 * time.Second).Element("input[type='text'], input[type='email']")
	if err != nil {
		return errors.New("login form not found")
	}
	pass, err := page.Timeout(5 * time.Second).Element("input[type='password']")
	if err != nil {
		return errors.New("password field not found")
	}

	if err := user.SelectAllText(); err == nil {
		_ = user.Input("")
	}
	if err := user.Input(username); err != nil {
		return fmt.Errorf("enter username: %w", err)
	}
	if err := pass.Input(password); err != nil {
		return fmt.Errorf("enter password: %w", err)
	}
	if err := pass.Type(input.Enter); err != nil {
		return fmt.Errorf("submit login: %w", err)
	}

	if _, err := page.Timeout(loginWaitTimeout).Element(searchBoxSelector); err != nil {
		return errors.New("login did not reach the search page")
	}
	return nil
}

func (p *Popup) searchAndClick(page *rod.Page, customer, orderCode string) error {
	search, err := page.Timeout(loginWaitTimeout).Element(searchBoxSelector)
	if err != nil {
		return errors.New("search box not found")
	}

	if err := search.SelectAllText(); err == nil {
		_ = search.Input("")
	}
	if err := search.Input(customer); err != nil {
		return fmt.Errorf("enter customer name: %w", err)
	}
	if err := search.Type(input.Enter); err != nil {
		return fmt.Errorf("submit search: %w", err)
	}

	// the card text carries "주문번호 <code>"; click its button ancestor
	xp := fmt.Sprintf(
		`//p[contains(normalize-space(.),'주문번호') and contains(normalize-space(.), '%s')]/ancestor::*[@role='button'][1]`,
		orderCode,
	)
	card, err := page.Timeout(cardWaitTimeout).ElementX(xp)
	if err != nil {
		return fmt.Errorf("order card %s not found", orderCode)
	}

	if err := card.ScrollIntoView(); err != nil {
		return fmt.Errorf("scroll to card: %w", err)
	}
	if err := card.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click card: %w", err)
	}

	return nil
}
