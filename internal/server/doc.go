// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server provides the local JSON HTTP API over one Session.
//
// Endpoints:
//   - GET    /health                              - Health check
//   - GET    /api/budget                          - Ledger snapshot
//   - POST   /api/budget/items                    - Add a validated line item
//   - PUT    /api/budget/items                    - Replace every line item
//   - PUT    /api/budget/items/{id}               - Update a line item
//   - DELETE /api/budget/items/{id}               - Delete a line item
//   - POST   /api/categories                      - Add a category
//   - POST   /api/categories/{name}/subcategories - Add a subcategory
//   - GET    /api/reports                         - Breakdown, variances, monthly
//   - POST   /api/chat                            - Send a chat message
//   - GET    /api/chat/messages                   - Chat log
//   - GET    /api/chat/pending                    - Template awaiting "apply"
//   - GET    /api/templates                       - Template catalog
//   - GET    /api/schedule, POST /api/schedule    - Production schedule
//   - GET    /api/settings, PUT /api/settings     - Project settings
//   - GET    /api/models                          - Installed Ollama models
//
// Every request passes panic recovery, request logging, per-IP rate
// limiting and a 1 MiB body limit.
package server
