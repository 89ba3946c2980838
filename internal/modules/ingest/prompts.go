package ingest

// DefaultPrompt instructs the extraction model to emit pipe-delimited
// triples. Callers may override it per request; the parser contract
// (one 'SUBJECT|RELATION|OBJECT' line per fact) must hold either way.
const DefaultPrompt = `Based on the entire content of the provided document, extract all key entities and their relationships.
An entity can be a person, organization, location, date, or a monetary value.
Present the output as a list of comma-separated values (CSV) with the format: 'ENTITY_1|RELATIONSHIP|ENTITY_2'.
The RELATIONSHIP should be a concise, active verb phrase formatted in snake_case_upper, like 'IMPOSED_FINE_ON' or 'IS_DIRECTOR_OF'.
Do not include a header row. Ensure all relevant relationships are extracted from the document.

Example Output:
'John Doe|IS_A|Director'
'XYZ Corp|IMPOSED_FINE_ON|ABC Ltd'
'ABC Ltd|WAS_FINED|Rs. 5 Lakh'
'SEBI|ISSUED_ORDER_ON|2023-04-15'`
