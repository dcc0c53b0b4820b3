// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package assistant implements the ai interfaces on top of the OpenAI
// Assistants API.
//
// Classification runs through a pre-provisioned assistant: each call creates
// a thread, posts the email text as a message, starts a run, polls the run
// until it reaches a terminal state, and parses the assistant's JSON reply.
// The assistant identity is injected through ai.Config and can be swapped at
// runtime with SetAssistantID without interrupting calls in flight.
//
// Embeddings go through an OpenAI-compatible embeddings endpoint via
// langchaingo, so local servers (Ollama, vLLM) work as drop-in replacements
// for the hosted API.
package assistant
