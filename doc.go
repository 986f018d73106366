// Package docdex provides a Go client for the docdex document indexing and
// semantic search service backed by Redis with the search module and an
// OpenAI-compatible embedding provider.
//
// Documents are fetched from a URL, parsed (PDF or plain text), split into
// overlapping chunks, summarized, embedded and stored in a vector index.
// Ingestion runs as background jobs with staged progress; search embeds the
// query in the same enhanced form chunks were indexed with and filters hits
// through a two-tier relevance policy.
//
//	client, err := docdex.New(
//	    docdex.WithRedis("localhost:6379", ""),
//	    docdex.WithOpenAI(os.Getenv("OPENAI_API_KEY")),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//	client.Start(ctx)
//
//	jobID, _ := client.SubmitDocument(docdex.DocumentRef{
//	    DocumentID:   "doc-1",
//	    CollectionID: "course-7",
//	    URL:          "https://files.example.com/algebra_notes.pdf",
//	    Name:         "algebra_notes.pdf",
//	    Subject:      "Math",
//	})
//	// poll client.Job(jobID) until Status is terminal
//
//	results, _ := client.Search(ctx, docdex.SearchQuery{
//	    Text:         "what is a quadratic equation",
//	    CollectionID: "course-7",
//	})
package docdex
