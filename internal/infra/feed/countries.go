package feed

import (
	"fmt"
	"net/url"
	"strings"
)

// countryConf targets Google News at a country: interface language, region
// code, and the site lists that separate verified (government, parliament,
// open-data portals) sources from reputable media.
type countryConf struct {
	Lang          string
	GL            string
	CEID          string
	VerifiedSites []string
	MediaSites    []string
}

// altNames maps a country to the spellings used in local-language coverage.
var altNames = map[string][]string{
	"Austria":                {"Austria", "Österreich"},
	"Bosnia and Herzegovina": {"Bosnia and Herzegovina", "Bosnia", "BiH", "Bosna i Hercegovina"},
	"Czech Republic":         {"Czech Republic", "Czechia", "Česko", "Česká republika"},
	"Malta":                  {"Malta"},
	"Serbia":                 {"Serbia", "Srbija"},
	"Slovakia":               {"Slovakia", "Slovensko"},
}

// topicKeywords is the open-government topic focus, with local-language
// hints for the covered regions.
var topicKeywords = []string{
	`"open government"`, "transparency", `"access to information"`, "whistleblower",
	`"beneficial ownership"`, `"open data"`, "anticorruption", "anti-corruption",
	"transparentnost", "protikorupcia", "prístup k informáciám",
	"antikorupcija", "pristup informacijama", "protikorupční",
	"Transparenz", "Informationsfreiheit", "Offene Daten",
}

// countryConfs carries the per-country targeting for countries with curated
// verified-source lists. Countries absent from this table fall back to
// defaultConf.
var countryConfs = map[string]countryConf{
	"Austria": {
		Lang: "de", GL: "AT", CEID: "AT:de",
		VerifiedSites: []string{"parlament.gv.at", "bundeskanzleramt.gv.at", "data.gv.at", "gv.at"},
		MediaSites:    []string{"orf.at", "derstandard.at", "kurier.at", "diepresse.com", "profil.at", "wienerzeitung.at"},
	},
	"Bosnia and Herzegovina": {
		Lang: "bs", GL: "BA", CEID: "BA:bs",
		VerifiedSites: []string{"parlament.ba", "gov.ba"},
		MediaSites:    []string{"klix.ba", "avaz.ba", "nezavisne.com", "rtrs.tv", "bhrt.ba", "radiosarajevo.ba"},
	},
	"Czech Republic": {
		Lang: "cs", GL: "CZ", CEID: "CZ:cs",
		VerifiedSites: []string{"vlada.cz", "psp.cz", "senat.cz", "gov.cz", "data.gov.cz"},
		MediaSites:    []string{"seznamzpravy.cz", "denikn.cz", "novinky.cz", "idnes.cz", "aktualne.cz", "ceskenoviny.cz"},
	},
	"Malta": {
		Lang: "en", GL: "MT", CEID: "MT:en",
		VerifiedSites: []string{"gov.mt", "parlament.mt", "data.gov.mt"},
		MediaSites:    []string{"timesofmalta.com", "maltatoday.com.mt", "newsbook.com.mt", "tvmnews.mt", "lovinmalta.com"},
	},
	"Serbia": {
		Lang: "sr", GL: "RS", CEID: "RS:sr",
		VerifiedSites: []string{"gov.rs", "parlament.rs"},
		MediaSites:    []string{"rts.rs", "n1info.rs", "b92.net", "danas.rs", "nova.rs", "politika.rs"},
	},
	"Slovakia": {
		Lang: "sk", GL: "SK", CEID: "SK:sk",
		VerifiedSites: []string{"gov.sk", "nrsr.sk", "data.gov.sk"},
		MediaSites:    []string{"sme.sk", "dennikn.sk", "aktuality.sk", "pravda.sk", "teraz.sk", "tasr.sk"},
	},
}

// defaultConf is the generic targeting for countries without a curated
// entry: English-language worldwide search with no verified-site list, so
// the media query carries the whole country.
var defaultConf = countryConf{Lang: "en", GL: "US", CEID: "US:en"}

// confFor returns the targeting configuration for a country.
func confFor(country string) countryConf {
	if conf, ok := countryConfs[country]; ok {
		return conf
	}
	return defaultConf
}

// namesFor returns the alternate spellings for a country, defaulting to the
// canonical name alone.
func namesFor(country string) []string {
	if names, ok := altNames[country]; ok {
		return names
	}
	return []string{country}
}

// gnewsURL builds a Google News RSS search URL for a query with language and
// region targeting.
func gnewsURL(query, lang, gl, ceid string) string {
	return fmt.Sprintf("https://news.google.com/rss/search?q=%s&hl=%s&gl=%s&ceid=%s",
		url.QueryEscape(query), lang, gl, ceid)
}

// siteQuery builds a "site:dom1 OR site:dom2" restriction clause.
func siteQuery(sites []string) string {
	parts := make([]string, 0, len(sites))
	for _, s := range sites {
		parts = append(parts, "site:"+s)
	}
	return strings.Join(parts, " OR ")
}

// buildQueries returns the verified-first and media search queries for a
// country: topic keywords AND country names AND an optional site clause.
func buildQueries(country string) (verified, media string) {
	names := namesFor(country)
	quoted := make([]string, 0, len(names))
	for _, n := range names {
		quoted = append(quoted, fmt.Sprintf("%q", n))
	}
	nameQ := strings.Join(quoted, " OR ")
	topics := strings.Join(topicKeywords, " OR ")
	conf := confFor(country)

	base := fmt.Sprintf("(%s) (%s)", topics, nameQ)
	if len(conf.VerifiedSites) > 0 {
		verified = fmt.Sprintf("%s (%s)", base, siteQuery(conf.VerifiedSites))
	}
	if len(conf.MediaSites) > 0 {
		media = fmt.Sprintf("%s (%s)", base, siteQuery(conf.MediaSites))
	} else {
		media = base
	}
	return verified, media
}

// Curated per-country feed queries for the countries the product started
// with. Used by the curated generator; expand as coverage grows.
var curatedQueries = map[string][]curatedQuery{
	"Morocco": {
		{Query: "Morocco governance OR transparency OR anti-corruption OR open data"},
		{Query: "site:maroc.ma decree OR law OR reform OR transparency"},
		{Query: "site:mapnews.ma governance OR transparency"},
	},
	"Benin": {
		{Query: "Benin governance OR transparency OR anti-corruption"},
		{Query: "site:gouv.bj décret OR loi OR transparence", Lang: "fr", GL: "BJ"},
	},
	"Côte d’Ivoire": {
		{Query: "Côte d’Ivoire governance OR transparency OR anti-corruption", Lang: "fr", GL: "CI"},
		{Query: "site:gouv.ci décret OR loi OR transparence", Lang: "fr", GL: "CI"},
	},
	"Senegal": {
		{Query: "Senegal governance OR transparency OR anti-corruption"},
		{Query: "site:gouv.sn décret OR loi OR transparence", Lang: "fr", GL: "SN"},
	},
	"Tunisia": {
		{Query: "Tunisia governance OR transparency OR anti-corruption"},
		{Query: "site:presidence.tn décret OR loi", Lang: "fr", GL: "TN"},
	},
	"Burkina Faso": {{Query: "Burkina Faso governance OR transparency OR anti-corruption"}},
	"Ghana":        {{Query: "Ghana governance OR transparency OR anti-corruption"}},
	"Liberia":      {{Query: "Liberia governance OR transparency OR anti-corruption"}},
	"Jordan":       {{Query: "Jordan governance OR transparency OR anti-corruption"}},
}

// curatedKeywords filters curated-feed items down to open-government topics.
var curatedKeywords = []string{
	"access to information", "freedom of information", "open data",
	"anti-corruption", "asset declaration", "whistleblower", "beneficial ownership",
	"budget transparency", "procurement", "open contracting", "civic space",
	"digital government", "e-government", "judicial reform", "press freedom",
	"participation", "co-creation", "OGP", "governance", "transparency",
	"accountability", "decentralization",
}

// curatedQuery is one Google News search in the curated feed list.
type curatedQuery struct {
	Query string
	Lang  string // defaults to "en"
	GL    string // defaults to "MA"
}

// URL renders the query as a Google News RSS URL.
func (q curatedQuery) URL() string {
	lang := q.Lang
	if lang == "" {
		lang = "en"
	}
	gl := q.GL
	if gl == "" {
		gl = "MA"
	}
	return gnewsURL(q.Query, lang, gl, gl+":"+lang)
}

// curatedURLsFor returns the feed URLs for a country; a country without a
// curated list gets a single generic governance query.
func curatedURLsFor(country string) []string {
	queries, ok := curatedQueries[country]
	if !ok {
		queries = []curatedQuery{{Query: country + " governance OR transparency OR anti-corruption"}}
	}
	urls := make([]string, 0, len(queries))
	for _, q := range queries {
		urls = append(urls, q.URL())
	}
	return urls
}
