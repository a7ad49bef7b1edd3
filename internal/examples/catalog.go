// Package examples holds the built-in demonstration task catalog.
package examples

import (
	"fmt"
	"sort"
	"strings"
)

// Example is one named (url, task) pair from the catalog.
type Example struct {
	Name        string
	Description string
	URL         string
	Task        string
}

var catalog = map[string]Example{
	"search": {
		Name:        "search",
		Description: "Web search and result analysis",
		URL:         "https://google.com",
		Task: `Search for 'browser automation with AI' and then:
1. Click on the first 3 search results
2. Read the title and first paragraph of each page
3. Summarize what you learned about browser automation with AI`,
	},
	"form": {
		Name:        "form",
		Description: "Form filling and submission",
		URL:         "https://httpbin.org/forms/post",
		Task: `Fill out this form with the following information:
- Customer name: John Doe
- Telephone: +1-555-123-4567
- Email: john.doe@example.com
- Size: Medium
- Topping: Cheese
- Delivery time: ASAP
- Comments: Please ring the doorbell twice

Then submit the form and confirm the submission was successful.`,
	},
	"data": {
		Name:        "data",
		Description: "Data extraction from web pages",
		URL:         "https://news.ycombinator.com",
		Task: `Extract the following information from the Hacker News front page:
1. Get the top 10 story titles
2. For each story, get the score/points and number of comments
3. Organize this information in a structured format
4. Identify which stories are trending (high score relative to time posted)`,
	},
	"navigation": {
		Name:        "navigation",
		Description: "Multi-page navigation and information gathering",
		URL:         "https://github.com/trending",
		Task: `Explore GitHub trending repositories:
1. Look at the trending repositories for today
2. Click on the top 3 repositories
3. For each repository, gather:
   - Repository name and description
   - Number of stars and forks
   - Primary programming language
   - Recent commit activity
4. Create a summary of the most interesting trends you observed`,
	},
	"shopping": {
		Name:        "shopping",
		Description: "Product browsing and comparison on a demo store",
		URL:         "https://demo.opencart.com",
		Task: `Browse this demo e-commerce site:
1. Search for 'laptop' products
2. Compare the first 3 laptops you find
3. Look at their specifications, prices, and ratings
4. Add the best value laptop to the shopping cart
5. Proceed to checkout (but don't complete the purchase)
6. Provide a summary of your comparison and recommendation`,
	},
	"social": {
		Name:        "social",
		Description: "Content analysis on a social platform",
		URL:         "https://reddit.com/r/programming",
		Task: `Analyze the r/programming subreddit:
1. Look at the top 10 hot posts
2. For each post, note:
   - Title and upvotes
   - Number of comments
   - Main topic/technology discussed
3. Identify the most discussed programming languages or technologies
4. Summarize current trends in the programming community`,
	},
	"accessibility": {
		Name:        "accessibility",
		Description: "Accessibility feature exploration",
		URL:         "https://webaim.org",
		Task: `Explore this accessibility-focused website:
1. Navigate using keyboard-only controls (Tab key navigation)
2. Check for alt text on images
3. Test the contrast and readability of the content
4. Look for accessibility tools and resources mentioned
5. Provide an assessment of the site's accessibility features`,
	},
	"api": {
		Name:        "api",
		Description: "HTTP endpoint testing through a web interface",
		URL:         "https://httpbin.org",
		Task: `Test various HTTP operations using httpbin:
1. Test a GET request with parameters
2. Test a POST request with JSON data
3. Test file upload functionality
4. Check response headers and status codes
5. Test different authentication methods if available
6. Document what each test revealed about HTTP behavior`,
	},
}

// Names returns the catalog entry names in sorted order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get looks up an example by name. Unknown names produce an error listing
// the valid choices.
func Get(name string) (Example, error) {
	ex, ok := catalog[name]
	if !ok {
		return Example{}, fmt.Errorf("unknown example '%s' (available: %s)", name, strings.Join(Names(), ", "))
	}
	return ex, nil
}

// All returns every example in sorted-name order.
func All() []Example {
	names := Names()
	out := make([]Example, 0, len(names))
	for _, name := range names {
		out = append(out, catalog[name])
	}
	return out
}
