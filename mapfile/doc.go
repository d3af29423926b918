// Package mapfile loads mapping tables for relation.FileRef sources.
//
// Supported formats, chosen by file extension:
//
//	.csv .tsv .txt   delimited text with a header line; the separator is
//	                 sniffed from the header (";", "," or tab)
//	.yaml .yml       a list of records sharing the same keys, or a plain
//	                 from→to mapping (columns "from" and "to")
//
// Cells are trimmed. Lines starting with "#" are comments in delimited files.
//
//	loader := mapfile.New(os.DirFS("mappings"))
//	out, err := aggregate.Aggregate(x, relation.FileRef{Path: "regions.csv"},
//	    aggregate.WithLoader(loader))
package mapfile
