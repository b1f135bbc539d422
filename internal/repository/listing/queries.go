package listing

import (
	"github.com/brokertools/directory/internal/content/groq"
	"github.com/brokertools/directory/internal/domain/entity"
)

// Query parameter names.
const (
	paramSlug  = "slug"
	paramSlugs = "slugs"
)

// logoURL resolves the logo across the document shapes, most specific first.
var logoURL = groq.FirstDefined(
	"logo.asset->url",
	"organisation->logo.asset->url",
	"images[@.isLogo == true][0].asset->url",
	"images[0].asset->url",
	"mainImage.asset->url",
	"heroImage.asset->url",
)

// listingTypeIs matches documents of the given listing type by _type alias or by the
// scalar/reference listingType field.
func listingTypeIs(value string, legacyType string) string {
	v := groq.String(value)
	exprs := []string{}
	if legacyType != "" {
		exprs = append(exprs, "_type == "+groq.String(legacyType))
	}
	exprs = append(exprs,
		"listingType == "+v,
		"listingType->value == "+v,
		"listingType->title == "+v,
	)
	return groq.AnyOf(exprs...)
}

var listingTypePredicate = groq.AnyOf(
	groq.AllOf(`$listingType == "software"`, listingTypeIs("software", entity.RawProduct)),
	groq.AllOf(`$listingType == "service"`, listingTypeIs("service", entity.RawServiceProvider)),
	groq.AllOf(`$listingType == "product"`, listingTypeIs("product", "")),
	groq.AllOf(`$listingType == "resourceGuide"`, "_type == "+groq.String(entity.RawBlog)),
)

var termsPredicate = groq.AnyOf(
	"count($searchTerms) == 0",
	"count($searchTerms["+
		"^.title match @ || "+
		"^.name match @ || "+
		"^.description match @ || "+
		"^.tagline match @ || "+
		"^.slug.current match @ || "+
		"^.category->title match @ || "+
		"^.categories[]->title match @ || "+
		"^.synonyms[] match @"+
		"]) > 0",
)

// searchQuery is the unified search over all listing shapes.
var searchQuery = groq.Documents().
	Where("_type in $contentTypes").
	Optional("category", groq.AnyOf(
		"category->slug.current == $category",
		"$category in categories[]->slug.current",
	)).
	Optional("subCategory", groq.AnyOf(
		"subCategory->slug.current == $subCategory",
		"$subCategory in subCategories[]->slug.current",
	)).
	Optional("brokerType", groq.AnyOf(
		"$brokerType == brokerType",
		"$brokerType in brokerType",
		"$brokerType in brokerTypes",
		`brokerType[] match $brokerType + "*"`,
		`brokerType match $brokerType + "*"`,
	)).
	Optional("listingType", listingTypePredicate).
	Optional("author", groq.AnyOf(
		"author->slug.current == $author",
		"author->name == $author",
	)).
	Where(termsPredicate).
	Order("defined(tags) desc", "defined(brokerType) desc", "_updatedAt desc").
	Project(
		"_id", "_type", "_updatedAt",
		"title", "name", "description", "tagline", "featuredLabel",
		"brokerType", "brokerTypes",
		groq.Field("slug", "slug.current"),
		groq.Field("category", groq.Coalesce("category->title", "categories[0]->title")),
		groq.Field("categories", "categories[]->title"),
		groq.Field("listingType", groq.Select(
			groq.Coalesce("listingType->value", "listingType->title", "listingType"),
			groq.Case{When: "_type == " + groq.String(entity.RawProduct), Then: groq.String(string(entity.Software))},
			groq.Case{When: "_type == " + groq.String(entity.RawServiceProvider), Then: groq.String(string(entity.Service))},
			groq.Case{When: "_type == " + groq.String(entity.RawBlog), Then: groq.String(string(entity.ResourceGuide))},
		)),
		groq.Field("badgePriority", "math::min(badges[]->priority)"),
		groq.Field("logoUrl", logoURL),
		"logo_url",
		groq.Field("heroImageUrl", "heroImage.asset->url"),
		"websiteURL", "websiteUrl",
	).
	Build()

// listingBySlugQuery fetches the focal listing of a comparison page. The raw document
// is spread first so that alternative field spellings reach the alias table.
var listingBySlugQuery = groq.Documents().
	Where("_type == "+groq.String(entity.RawDirectoryListing), "slug.current == $"+paramSlug).
	First().
	Project(
		"...",
		groq.Field("slug", "slug.current"),
		groq.Field("category", "category->{title, \"slug\": slug.current}"),
		groq.Field("logoUrl", "logo.asset->url"),
		groq.Field("features", `features[]{availability, limitationType, notes, "feature": feature->{title, "slug": slug.current}}`),
		groq.Field("serviceAreas", "serviceAreas[]->{title, group}"),
		groq.Field("worksWith", `worksWith[]->{title, "slug": slug.current, listingType}`),
		groq.Field("badges", `badges[]->{title, "slug": slug.current, color, priority}`),
		groq.Field("author", "author->{name}"),
		groq.Field("similarTo", `similarTo[]{priority, "listing": listing->{title, "slug": slug.current, "logoUrl": logo.asset->url}}`),
		groq.Field("serviceProviders", `serviceProviders[]->{`+
			`_id, title, name, description, rating, viewCount, websiteURL, websiteUrl, brokerType, logo_url, `+
			`"slug": slug.current, `+
			`"logoUrl": logo.asset->url, `+
			`"categories": categories[]->title, `+
			`"badges": badges[]->{title, color}}`),
	).
	Build()

// comparisonQuery fetches the capability matrix of several listings in one round trip.
var comparisonQuery = groq.Documents().
	Where("_type == "+groq.String(entity.RawDirectoryListing), "slug.current in $"+paramSlugs).
	Project(
		"title", "tagline", "pricing", "rating", "websiteURL", "websiteUrl", "logo_url",
		groq.Field("slug", "slug.current"),
		groq.Field("logoUrl", "logo.asset->url"),
		groq.Field("worksWith", `worksWith[]->{title, "slug": slug.current}`),
		groq.Field("serviceAreas", "serviceAreas[]->title"),
		groq.Field("alternativesCount", "count(similarTo)"),
		groq.Field("features", `features[]{availability, limitationType, notes, score, `+
			`"feature": feature->{title, "category": category->{title, order}}}`),
	).
	Build()
