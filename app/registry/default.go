package registry

// Default returns the built-in source catalog: Korean and global tech press.
func Default() []Source {
	return []Source{
		// Korean tech news
		{URL: "https://it.donga.com/feeds/rss/", Name: "IT동아", Language: "ko", Category: "IT"},
		{URL: "https://rss.etnews.com/Section902.xml", Name: "전자신문_속보", Language: "ko", Category: "IT"},
		{URL: "https://rss.etnews.com/Section901.xml", Name: "전자신문_오늘의뉴스", Language: "ko", Category: "IT"},
		{URL: "https://zdnet.co.kr/news/news_xml.asp", Name: "ZDNet Korea", Language: "ko", Category: "IT"},
		{URL: "https://www.itworld.co.kr/rss/all.xml", Name: "ITWorld Korea", Language: "ko", Category: "IT"},
		{URL: "https://www.ciokorea.com/rss/all.xml", Name: "CIO Korea", Language: "ko", Category: "IT"},
		{URL: "https://www.bloter.net/feed", Name: "Bloter", Language: "ko", Category: "IT"},
		{URL: "https://byline.network/feed/", Name: "Byline Network", Language: "ko", Category: "IT"},
		{URL: "https://platum.kr/feed", Name: "Platum", Language: "ko", Category: "Startup"},
		{URL: "https://www.boannews.com/media/news_rss.xml", Name: "보안뉴스", Language: "ko", Category: "Security"},
		{URL: "https://it.chosun.com/rss.xml", Name: "IT조선", Language: "ko", Category: "IT"},
		{URL: "https://www.ddaily.co.kr/news_rss.php", Name: "디지털데일리", Language: "ko", Category: "IT"},
		{URL: "https://www.kbench.com/rss.xml", Name: "KBench", Language: "ko", Category: "IT"},
		{URL: "https://www.sedaily.com/rss/IT.xml", Name: "서울경제 IT", Language: "ko", Category: "IT"},
		{URL: "https://www.hankyung.com/feed/it", Name: "한국경제 IT", Language: "ko", Category: "IT"},

		// Global tech news
		{URL: "https://techcrunch.com/feed/", Name: "TechCrunch", Language: "en", Category: "Tech"},
		{URL: "https://www.eetimes.com/feed/", Name: "EE Times", Language: "en", Category: "Electronics"},
		{URL: "https://spectrum.ieee.org/rss/fulltext", Name: "IEEE Spectrum", Language: "en", Category: "Engineering"},
		{URL: "https://www.technologyreview.com/feed/", Name: "MIT Tech Review", Language: "en", Category: "Tech"},
		{URL: "https://www.theverge.com/rss/index.xml", Name: "The Verge", Language: "en", Category: "Tech"},
		{URL: "https://www.wired.com/feed/rss", Name: "WIRED", Language: "en", Category: "Tech"},
		{URL: "https://www.engadget.com/rss.xml", Name: "Engadget", Language: "en", Category: "Tech"},
		{URL: "https://venturebeat.com/category/ai/feed/", Name: "VentureBeat AI", Language: "en", Category: "AI"},
		{URL: "https://arstechnica.com/feed/", Name: "Ars Technica", Language: "en", Category: "Tech"},
		{URL: "https://feeds.feedburner.com/oreilly/radar", Name: "O'Reilly Radar", Language: "en", Category: "Tech"},
	}
}
