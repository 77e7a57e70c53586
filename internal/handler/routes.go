package handler

// UIPrefix is the base path of the console's JSON endpoints.
// Keep a single source of truth to avoid path drift across handlers and tests.
const UIPrefix = "/ui"
