package web

import "net/http"

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexHTML))
}

const indexHTML = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>ClockApp</title>
    <style>
        body { font-family: sans-serif; max-width: 640px; margin: 40px auto; padding: 20px; }
        h1 { color: #333; }
        .clock { font-size: 2.5em; font-variant-numeric: tabular-nums; margin: 10px 0; }
        .panel { background: #f0f0f0; padding: 15px; border-radius: 5px; margin: 20px 0; }
        button { background: #007bff; color: white; border: none; padding: 8px 16px; border-radius: 5px; cursor: pointer; margin-right: 4px; }
        button:disabled { background: #aaa; cursor: default; }
        input { width: 60px; padding: 6px; margin: 4px; }
        .state { color: #666; }
    </style>
</head>
<body>
    <h1 id="title-settings"></h1>
    <button onclick="toggleLanguage()" id="btn-language"></button>

    <div class="panel">
        <h2 id="title-stopwatch"></h2>
        <div class="clock" id="sw-display">00:00</div>
        <div class="state" id="sw-state"></div>
        <div id="sw-buttons"></div>
    </div>

    <div class="panel">
        <h2 id="title-timer"></h2>
        <div>
            <label id="lbl-hours"></label><input type="number" id="hours" min="0" max="23" onchange="pick()">
            <label id="lbl-minutes"></label><input type="number" id="minutes" min="0" max="59" onchange="pick()">
            <label id="lbl-seconds"></label><input type="number" id="seconds" min="0" max="59" onchange="pick()">
        </div>
        <div class="clock" id="tm-display">00 : 00 : 00</div>
        <div class="state" id="tm-state"></div>
        <div id="tm-buttons"></div>
    </div>

    <script>
        const commands = ['start', 'pause', 'resume', 'reset'];

        function buttons(el, mode, view, labels) {
            el.innerHTML = '';
            for (const c of commands) {
                const b = document.createElement('button');
                b.textContent = labels['command.' + c];
                b.disabled = !view.commands.includes(c);
                b.onclick = () => send('/api/' + mode + '/' + c, 'POST');
                el.appendChild(b);
            }
        }

        function render(data) {
            const l = data.labels;
            document.getElementById('title-settings').textContent = l['settings.title'];
            document.getElementById('btn-language').textContent = l['settings.language'];
            document.getElementById('title-stopwatch').textContent = l['stopwatch.title'];
            document.getElementById('title-timer').textContent = l['timer.title'];
            document.getElementById('lbl-hours').textContent = l['picker.hours'];
            document.getElementById('lbl-minutes').textContent = l['picker.minutes'];
            document.getElementById('lbl-seconds').textContent = l['picker.seconds'];

            document.getElementById('sw-display').textContent = data.stopwatch.display;
            document.getElementById('sw-state').textContent = data.stopwatch.stateLabel;
            buttons(document.getElementById('sw-buttons'), 'stopwatch', data.stopwatch, l);

            document.getElementById('tm-display').textContent = data.timer.display;
            document.getElementById('tm-state').textContent = data.timer.stateLabel;
            buttons(document.getElementById('tm-buttons'), 'timer', data.timer, l);

            for (const f of ['hours', 'minutes', 'seconds']) {
                const input = document.getElementById(f);
                input.disabled = !data.timer.pickerEditable;
                if (document.activeElement !== input) input.value = data.picker[f];
            }
        }

        async function send(url, method, body) {
            const res = await fetch(url, {
                method: method,
                headers: {'Content-Type': 'application/json'},
                body: body ? JSON.stringify(body) : undefined
            });
            if (res.ok) render(await res.json());
        }

        function pick() {
            send('/api/picker', 'PUT', {
                hours: parseInt(document.getElementById('hours').value) || 0,
                minutes: parseInt(document.getElementById('minutes').value) || 0,
                seconds: parseInt(document.getElementById('seconds').value) || 0
            });
        }

        function toggleLanguage() {
            send('/api/language/toggle', 'POST');
        }

        const events = new EventSource('/api/events');
        events.onmessage = (e) => render(JSON.parse(e.data));
    </script>
</body>
</html>`
