package module

import (
	"net/http"
	"strings"

	"workshopdex/internal/adapters/workshop"
	"workshopdex/internal/core/langs"
	"workshopdex/internal/modkit/swaggerkit"
	phttp "workshopdex/internal/platform/net/http"
	"workshopdex/internal/services/api/pages/domain"
)

func init() { swaggerkit.Register(describePages) }

// describePages lists the language names filter input resolves to and shows the app page
// answering 200 while its listing half failed
func describePages(doc map[string]any) {
	names := strings.Join(langs.Names(), ", ")
	swaggerkit.EachOperation(doc, func(_, _ string, op map[string]any) {
		params, _ := op["parameters"].([]any)
		for _, p := range params {
			pm, ok := p.(map[string]any)
			if ok && pm["name"] == "language" && pm["in"] == "query" {
				pm["description"] = "Backend language name, its English or native name, or a BCP 47 tag. Resolves to one of: " + names
			}
		}
	})
	if op, ok := swaggerkit.Operation(doc, "/pages/apps/{id}", "get"); ok {
		swaggerkit.AddExample(op, "200", "listing_failed",
			"The backend rejected the listing, the app detail still loaded", listingFailedExample())
	}
}

func listingFailedExample() phttp.Envelope {
	page := domain.AppPage{
		ID:    "294100",
		Query: "language=English&limit=50&app=294100",
		App:   domain.NewSection(workshop.Payload(`{"id":294100,"name":"RimWorld","enabled":true,"available":true}`), nil),
		Listing: domain.NewListingSection(workshop.Fail(workshop.Failure{
			Status:     http.StatusInternalServerError,
			StatusText: http.StatusText(http.StatusInternalServerError),
			Body:       "boom",
		}), nil),
	}
	return phttp.Envelope{StatusCode: http.StatusOK, Status: http.StatusText(http.StatusOK), Data: page}
}
