/*
Package domain contains the core data model of the flow editor: nodes, edges,
graphs, patches and the result/issue types shared by every layer.

The model is deliberately dumb. All behavior (applying patches, validating
topology, generating labels) lives in sibling packages; domain only defines
the shapes they exchange, so adapters (HTTP, MCP, stores) can serialize them
without importing any logic.
*/
package domain
