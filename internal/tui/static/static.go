// ABOUTME: Static policy pages and the not-found fallback
// ABOUTME: Content is fixed text; no network or state involved

package static

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gobiz/gobiz-cli/internal/nav"
	"github.com/gobiz/gobiz-cli/internal/tui/icons"
	"github.com/gobiz/gobiz-cli/internal/tui/styles"
)

// Page renders one of the fixed-content pages
type Page struct {
	title string
	body  string
}

// New returns the static page for p, or the not-found fallback for
// anything this package does not know.
func New(p nav.Page) *Page {
	switch p {
	case nav.PageTerms:
		return &Page{title: "Terms of service", body: termsBody}
	case nav.PagePrivacy:
		return &Page{title: "Privacy policy", body: privacyBody}
	case nav.PageRefund:
		return &Page{title: "Refund policy", body: refundBody}
	default:
		return &Page{title: "Page not found", body: notFoundBody}
	}
}

// Init implements tea.Model
func (p *Page) Init() tea.Cmd { return nil }

// Update implements tea.Model
func (p *Page) Update(tea.Msg) (tea.Model, tea.Cmd) { return p, nil }

// View implements tea.Model
func (p *Page) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Info.String() + " " + p.title))
	sb.WriteString("\n")
	for _, para := range strings.Split(p.body, "\n\n") {
		sb.WriteString(styles.MutedStyle.Render(strings.TrimSpace(para)))
		sb.WriteString("\n\n")
	}
	sb.WriteString(styles.Help.Render("esc back"))
	return sb.String()
}

const termsBody = `
Go-Biz provides paid lookup of publicly sourced mobile-number
information. By creating an account you agree to use the service for
lawful purposes only.

Every search is billed against your wallet balance at the time of the
request, including searches that return no record. Fees are shown
before and after each search.

Accounts used for harassment, stalking, or any activity prohibited by
law will be deactivated without refund.

Wallet credits are non-transferable between accounts.
`

const privacyBody = `
We store your name, email address, and a hash of your password. We
never store your payment card details; gateway payments are processed
entirely by the payment provider.

Your search history is retained so you can review past lookups. You can
delete individual entries at any time from the history page; deletion
is immediate and permanent.

Support chat transcripts are kept for quality and dispute resolution.
`

const refundBody = `
Wallet deposits are generally non-refundable once credited.

If a gateway payment was debited from your bank but never credited to
your wallet, contact support with the order reference; verified
failures are re-credited in full.

Manual deposits rejected during review are never debited; the money
stays in your bank account.
`

const notFoundBody = `
The page you were looking for does not exist.

Use the menu on the landing page or press esc to go back.
`
