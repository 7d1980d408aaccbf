package handler

// APIV1Prefix is the canonical base path for the JSON API.
const APIV1Prefix = "/api/v1"
