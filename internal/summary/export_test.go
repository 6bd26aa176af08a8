package summary

const UnparsedKnowledgePoints = unparsedKnowledgePoints
